package stats

import (
	"sort"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

// LeaderboardEntry is one ranked row of the community comparison.
type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	UserID          uint    `json:"user_id"`
	Username        string  `json:"username"`
	AvgScorePercent int     `json:"avg_score"`
	Sessions        int     `json:"sessions"`
	TotalTimeHours  float64 `json:"total_time"`
}

// NameResolver looks up a display name for a user id, typically from
// the users table. It reports false when no profile exists.
type NameResolver func(userID uint) (string, bool)

type userGroup struct {
	userID     uint
	username   string
	totalScore float64
	sessions   int
	totalTime  int
}

// ComputeLeaderboard folds all users' sessions into a ranked
// comparison over the trailing window. Sessions with no end time are
// excluded, matching the per-user statistics policy. The community
// average is the mean of per-user average scores — a mean of means, so
// every user weighs equally regardless of how many sessions they
// logged. ok is false when no session qualifies; the caller renders an
// empty leaderboard instead of dividing by zero.
//
// Display names resolve through an ordered fallback chain: the
// username embedded on a session record, then the resolver (profile
// lookup), then "Anonymous".
func ComputeLeaderboard(sessions []models.Session, resolve NameResolver, now time.Time, window time.Duration) (entries []LeaderboardEntry, communityAvgPercent int, ok bool) {
	cutoff := now.Add(-window)

	groups := make(map[uint]*userGroup)
	var order []uint

	for i := range sessions {
		s := sessions[i]
		if s.Active() || s.StartTime.Before(cutoff) {
			continue
		}

		g, seen := groups[s.UserID]
		if !seen {
			g = &userGroup{userID: s.UserID}
			groups[s.UserID] = g
			order = append(order, s.UserID)
		}
		if g.username == "" {
			g.username = s.Username
		}
		g.totalScore += s.SessionScore
		g.sessions++
		g.totalTime += s.Duration(now)
	}

	if len(order) == 0 {
		return nil, 0, false
	}

	var communitySum float64
	for _, userID := range order {
		g := groups[userID]

		name := g.username
		if name == "" && resolve != nil {
			if resolved, found := resolve(userID); found {
				name = resolved
			}
		}
		if name == "" {
			name = "Anonymous"
		}

		avg := g.totalScore / float64(g.sessions)
		communitySum += avg
		entries = append(entries, LeaderboardEntry{
			UserID:          userID,
			Username:        name,
			AvgScorePercent: roundPercent(avg),
			Sessions:        g.sessions,
			TotalTimeHours:  round1(float64(g.totalTime) / 3600),
		})
	}

	// Descending by average score. Ties keep first-seen order, so the
	// sort must be stable.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AvgScorePercent > entries[j].AvgScorePercent
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, roundPercent(communitySum / float64(len(entries))), true
}
