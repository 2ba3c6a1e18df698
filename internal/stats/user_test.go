package stats

import (
	"testing"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

var statsNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

const statsWindow = 14 * 24 * time.Hour

func completed(id string, userID uint, start time.Time, score float64, sitDuration int) models.Session {
	end := start.Add(time.Duration(sitDuration) * time.Second)
	return models.Session{
		ID:           id,
		UserID:       userID,
		StartTime:    start,
		EndTime:      &end,
		SessionScore: score,
		SitDuration:  sitDuration,
	}
}

func TestComputeUserStatsEmpty(t *testing.T) {
	got := ComputeUserStats(nil, statsNow, statsWindow)

	if got.TotalSessions != 0 {
		t.Errorf("TotalSessions = %d, want 0", got.TotalSessions)
	}
	if got.TotalSittingHours != 0 {
		t.Errorf("TotalSittingHours = %v, want 0", got.TotalSittingHours)
	}
	// Average must be a clean zero, not NaN leaking into JSON.
	if got.AvgScorePercent != 0 {
		t.Errorf("AvgScorePercent = %d, want 0", got.AvgScorePercent)
	}
}

func TestComputeUserStatsTotals(t *testing.T) {
	sessions := []models.Session{
		completed("s2", 1, statsNow.Add(-time.Hour), 0.8, 3600),
		completed("s1", 1, statsNow.Add(-2*time.Hour), 0.4, 1800),
	}

	got := ComputeUserStats(sessions, statsNow, statsWindow)

	if got.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", got.TotalSessions)
	}
	// 5400 seconds = 1.5 hours.
	if got.TotalSittingHours != 1.5 {
		t.Errorf("TotalSittingHours = %v, want 1.5", got.TotalSittingHours)
	}
	// Mean of 0.8 and 0.4 is 0.6.
	if got.AvgScorePercent != 60 {
		t.Errorf("AvgScorePercent = %d, want 60", got.AvgScorePercent)
	}
}

func TestComputeUserStatsExcludesActiveSession(t *testing.T) {
	active := models.Session{ID: "open", UserID: 1, StartTime: statsNow.Add(-time.Minute), SessionScore: 0.1, SitDuration: 60}
	sessions := []models.Session{
		active,
		completed("done", 1, statsNow.Add(-time.Hour), 0.8, 3600),
	}

	got := ComputeUserStats(sessions, statsNow, statsWindow)

	if got.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1 (open session excluded)", got.TotalSessions)
	}
	if got.AvgScorePercent != 80 {
		t.Errorf("AvgScorePercent = %d, want 80", got.AvgScorePercent)
	}
	if got.ActiveSession == nil || got.ActiveSession.ID != "open" {
		t.Fatalf("ActiveSession = %+v, want the open session", got.ActiveSession)
	}
	for _, s := range got.WindowSessions {
		if s.ID == "open" {
			t.Error("open session leaked into WindowSessions")
		}
	}
}

func TestComputeUserStatsWindowPartition(t *testing.T) {
	sessions := []models.Session{
		completed("recent", 1, statsNow.Add(-24*time.Hour), 0.9, 3600),
		completed("edge", 1, statsNow.Add(-statsWindow), 0.5, 3600),
		completed("old", 1, statsNow.Add(-statsWindow-time.Second), 0.1, 3600),
	}

	got := ComputeUserStats(sessions, statsNow, statsWindow)

	// All-time totals include everything.
	if got.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", got.TotalSessions)
	}
	// The window keeps the boundary session and drops the older one.
	if len(got.WindowSessions) != 2 {
		t.Fatalf("WindowSessions has %d sessions, want 2", len(got.WindowSessions))
	}
	if got.WindowSessions[0].ID != "recent" || got.WindowSessions[1].ID != "edge" {
		t.Errorf("WindowSessions = [%s %s], want [recent edge]",
			got.WindowSessions[0].ID, got.WindowSessions[1].ID)
	}
}

func TestComputeUserStatsRounding(t *testing.T) {
	// 2750 seconds is 0.7638... hours; displays round to one decimal.
	sessions := []models.Session{
		completed("s1", 1, statsNow.Add(-time.Hour), 0.666, 2750),
	}

	got := ComputeUserStats(sessions, statsNow, statsWindow)

	if got.TotalSittingHours != 0.8 {
		t.Errorf("TotalSittingHours = %v, want 0.8", got.TotalSittingHours)
	}
	if got.AvgScorePercent != 67 {
		t.Errorf("AvgScorePercent = %d, want 67", got.AvgScorePercent)
	}
}
