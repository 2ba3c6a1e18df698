package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"
	"github.com/Muunneebb/PostureHealthTracker/internal/services"
	"github.com/Muunneebb/PostureHealthTracker/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	log     *zap.Logger
	monitor *services.Monitor
}

func NewSessionHandler(log *zap.Logger, monitor *services.Monitor) *SessionHandler {
	return &SessionHandler{log: log, monitor: monitor}
}

// Start opens a new monitoring session and launches its reading feed.
func (h *SessionHandler) Start(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	session, err := h.monitor.StartSession(c.Request.Context(), user.ID, user.DisplayName())
	if err != nil {
		if errors.Is(err, tracker.ErrActiveSession) {
			c.JSON(http.StatusConflict, gin.H{"error": "A session is already running. End it before starting a new one."})
			return
		}
		h.log.Error("Failed to start session", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"session_id": session.ID,
		"start_time": session.StartTime,
	})
}

type readingRequest struct {
	Timestamp       time.Time `json:"timestamp"`
	Pitch           float64   `json:"pitch"`
	Roll            float64   `json:"roll"`
	FSRLeft         float64   `json:"fsr_left"`
	FSRRight        float64   `json:"fsr_right"`
	FSRCenter       float64   `json:"fsr_center"`
	StressScore     *float64  `json:"stress_score"`
	Seated          bool      `json:"is_seated"`
	BuzzerTriggered bool      `json:"buzzer_triggered"`
}

// AddReading ingests one hardware-produced reading into the session.
func (h *SessionHandler) AddReading(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reading payload"})
		return
	}

	reading := models.Reading{
		Timestamp:       req.Timestamp,
		Pitch:           req.Pitch,
		Roll:            req.Roll,
		FSRLeft:         req.FSRLeft,
		FSRRight:        req.FSRRight,
		FSRCenter:       req.FSRCenter,
		StressScore:     req.StressScore,
		Seated:          req.Seated,
		BuzzerTriggered: req.BuzzerTriggered,
	}

	if err := h.monitor.Record(c.Request.Context(), session.ID, reading); err != nil {
		switch {
		case errors.Is(err, tracker.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, tracker.ErrSessionCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Session already ended"})
		default:
			h.log.Error("Failed to record reading", zap.Error(err), zap.String("sessionID", session.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reading"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// End completes the session and freezes its score and durations.
func (h *SessionHandler) End(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	completed, err := h.monitor.EndSession(c.Request.Context(), session.ID)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, tracker.ErrSessionCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Session already ended"})
		default:
			h.log.Error("Failed to end session", zap.Error(err), zap.String("sessionID", session.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"end_time": completed.EndTime,
		"duration": completed.Duration(time.Now()),
	})
}

// Stats returns the live per-session state the dashboard polls for
// alert conditions after each reading.
func (h *SessionHandler) Stats(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionJSON(session, time.Now()))
}

// Detail returns the session together with its readings.
func (h *SessionHandler) Detail(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	readings, err := repository.ReadingsForSession(c.Request.Context(), session.ID)
	if err != nil {
		h.log.Error("Failed to load readings", zap.Error(err), zap.String("sessionID", session.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	payload := sessionJSON(session, time.Now())
	payload["start_time"] = session.StartTime
	payload["readings"] = readings
	c.JSON(http.StatusOK, payload)
}

// List returns the user's session history, most recent first.
func (h *SessionHandler) List(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	sessions, err := repository.SessionsForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to list sessions", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		item := sessionJSON(s, now)
		item["start_time"] = s.StartTime
		item["end_time"] = s.EndTime
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// ownedSession loads the :id session and enforces that it belongs to
// the authenticated user.
func (h *SessionHandler) ownedSession(c *gin.Context) (*models.Session, bool) {
	user := c.MustGet("user").(*models.User)

	session, err := repository.SessionForUser(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		h.log.Error("Failed to load session", zap.Error(err), zap.String("sessionID", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil, false
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return session, true
}

func sessionJSON(s *models.Session, now time.Time) gin.H {
	duration := s.Duration(now)
	sittingPct := 0.0
	if duration > 0 {
		sittingPct = float64(s.SitDuration) / float64(duration) * 100
	}
	return gin.H{
		"id":                     s.ID,
		"duration":               duration,
		"sitting_duration":       s.SitDuration,
		"sitting_percentage":     sittingPct,
		"session_score":          s.SessionScore,
		"buzzer_count":           s.BuzzerCount,
		"break_alert":            s.BreakAlertTriggered,
		"excessive_buzzer_alert": s.ExcessiveBuzzerAlert,
	}
}
