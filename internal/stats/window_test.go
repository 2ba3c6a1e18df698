package stats

import (
	"testing"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

func TestSummarizeWindowEmpty(t *testing.T) {
	summary, ok := SummarizeWindow(nil)
	if ok {
		t.Error("ok = true for empty window")
	}
	if summary != (WindowSummary{}) {
		t.Errorf("summary = %+v, want zero value", summary)
	}
}

func TestSummarizeWindow(t *testing.T) {
	sessions := []models.Session{
		completed("s1", 1, time.Now(), 0.9, 3600),
		completed("s2", 1, time.Now(), 0.3, 3600),
		completed("s3", 1, time.Now(), 0.6, 3600),
	}

	summary, ok := SummarizeWindow(sessions)
	if !ok {
		t.Fatal("ok = false")
	}
	if summary.BestScorePercent != 90 {
		t.Errorf("BestScorePercent = %d, want 90", summary.BestScorePercent)
	}
	if summary.WorstScorePercent != 30 {
		t.Errorf("WorstScorePercent = %d, want 30", summary.WorstScorePercent)
	}
	if summary.AvgScorePercent != 60 {
		t.Errorf("AvgScorePercent = %d, want 60", summary.AvgScorePercent)
	}
	if summary.Sessions != 3 {
		t.Errorf("Sessions = %d, want 3", summary.Sessions)
	}
}
