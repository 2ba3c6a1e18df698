// Derived views over persisted session records. Everything in this
// package is a side-effect-free snapshot computation: callers fetch
// the records, these functions fold them.
package stats

import (
	"math"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

// UserStats summarizes one user's completed sessions: all-time totals
// plus the slice of sessions inside the trailing window, kept so the
// analytics and leaderboard views don't need a second fetch.
type UserStats struct {
	TotalSessions     int     `json:"total_sessions"`
	TotalSittingHours float64 `json:"total_sitting_hours"`
	AvgScorePercent   int     `json:"avg_score"`

	WindowSessions []models.Session `json:"-"`
	ActiveSession  *models.Session  `json:"-"`
}

// ComputeUserStats folds a user's sessions (expected ordered by start
// time descending) into summary statistics. Sessions with no end time
// are excluded from every total; if more than one is open — the
// one-active-session invariant was violated upstream — the first
// encountered is treated as "the" active session.
func ComputeUserStats(sessions []models.Session, now time.Time, window time.Duration) UserStats {
	var (
		out          UserStats
		totalSitting int
		totalScore   float64
	)
	cutoff := now.Add(-window)

	for i := range sessions {
		s := sessions[i]
		if s.Active() {
			if out.ActiveSession == nil {
				out.ActiveSession = &sessions[i]
			}
			continue
		}

		out.TotalSessions++
		totalSitting += s.SitDuration
		totalScore += s.SessionScore

		if !s.StartTime.Before(cutoff) {
			out.WindowSessions = append(out.WindowSessions, s)
		}
	}

	out.TotalSittingHours = round1(float64(totalSitting) / 3600)
	if out.TotalSessions > 0 {
		out.AvgScorePercent = roundPercent(totalScore / float64(out.TotalSessions))
	}
	return out
}

// round1 rounds to one decimal place (hours displays).
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// roundPercent converts a [0,1] score to an integer percentage.
func roundPercent(score float64) int {
	return int(math.Round(score * 100))
}
