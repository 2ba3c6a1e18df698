package handlers

import (
	"net/http"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"
	"github.com/Muunneebb/PostureHealthTracker/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	log *zap.Logger
}

func NewAnalyticsHandler(log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{log: log}
}

// Chart renders the two-week session-score line chart.
func (h *AnalyticsHandler) Chart(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	sessions, err := repository.SessionsForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load sessions for chart", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}

	userStats := stats.ComputeUserStats(sessions, time.Now(), config.Conf.Monitor.Window())
	line := generateScoreChart(userStats.WindowSessions)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render analytics chart", zap.Error(err), zap.Uint("userID", user.ID))
	}
}

func generateScoreChart(window []models.Session) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "2-Week Session Scores",
			Subtitle: "Score (%)",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	// Window sessions arrive newest-first; the chart reads left to
	// right chronologically.
	items := make([]opts.LineData, 0, len(window))
	for i := len(window) - 1; i >= 0; i-- {
		s := window[i]
		items = append(items, opts.LineData{Value: []interface{}{s.StartTime, s.SessionScore * 100}})
	}

	line.AddSeries("Session Score (%)", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
