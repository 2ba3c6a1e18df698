package handlers

import (
	"net/http"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"
	"github.com/Muunneebb/PostureHealthTracker/internal/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	log *zap.Logger
}

func NewDashboardHandler(log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

// UserStats returns the dashboard header: all-time totals plus the
// trailing-window analytics summary. A storage failure degrades to the
// zero-valued stats rather than breaking the page.
func (h *DashboardHandler) UserStats(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	sessions, err := repository.SessionsForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load sessions for stats", zap.Error(err), zap.Uint("userID", user.ID))
		sessions = nil
	}

	userStats := stats.ComputeUserStats(sessions, time.Now(), config.Conf.Monitor.Window())
	resp := gin.H{
		"total_sessions":      userStats.TotalSessions,
		"total_sitting_hours": userStats.TotalSittingHours,
		"avg_score":           userStats.AvgScorePercent,
	}
	if userStats.ActiveSession != nil {
		resp["active_session_id"] = userStats.ActiveSession.ID
	}
	if summary, ok := stats.SummarizeWindow(userStats.WindowSessions); ok {
		resp["window"] = summary
	}

	c.JSON(http.StatusOK, resp)
}
