package stats

import "github.com/Muunneebb/PostureHealthTracker/internal/models"

// WindowSummary condenses the trailing window into the analytics
// header figures.
type WindowSummary struct {
	BestScorePercent  int `json:"best_score"`
	WorstScorePercent int `json:"worst_score"`
	AvgScorePercent   int `json:"period_avg_score"`
	Sessions          int `json:"period_session_count"`
}

// SummarizeWindow reports best, worst and average scores over the
// window sessions. ok is false for an empty window.
func SummarizeWindow(sessions []models.Session) (WindowSummary, bool) {
	if len(sessions) == 0 {
		return WindowSummary{}, false
	}

	best, worst, sum := sessions[0].SessionScore, sessions[0].SessionScore, 0.0
	for _, s := range sessions {
		if s.SessionScore > best {
			best = s.SessionScore
		}
		if s.SessionScore < worst {
			worst = s.SessionScore
		}
		sum += s.SessionScore
	}

	return WindowSummary{
		BestScorePercent:  roundPercent(best),
		WorstScorePercent: roundPercent(worst),
		AvgScorePercent:   roundPercent(sum / float64(len(sessions))),
		Sessions:          len(sessions),
	}, true
}
