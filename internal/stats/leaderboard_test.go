package stats

import (
	"testing"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

func namedSession(userID uint, username string, start time.Time, score float64, sitDuration int) models.Session {
	s := completed("", userID, start, score, sitDuration)
	s.Username = username
	return s
}

func TestComputeLeaderboardEmpty(t *testing.T) {
	entries, avg, ok := ComputeLeaderboard(nil, nil, statsNow, statsWindow)
	if ok {
		t.Error("ok = true for no sessions")
	}
	if entries != nil || avg != 0 {
		t.Errorf("entries = %v, avg = %d, want nil and 0", entries, avg)
	}
}

func TestComputeLeaderboardRankingAndTies(t *testing.T) {
	sessions := []models.Session{
		namedSession(1, "alice", statsNow.Add(-3*time.Hour), 0.80, 3600),
		namedSession(2, "bob", statsNow.Add(-2*time.Hour), 0.95, 3600),
		namedSession(3, "carol", statsNow.Add(-time.Hour), 0.80, 3600),
	}

	entries, _, ok := ComputeLeaderboard(sessions, nil, statsNow, statsWindow)
	if !ok {
		t.Fatal("ok = false")
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// bob leads; alice and carol tie at 80 and keep first-seen order.
	want := []struct {
		username string
		rank     int
		avg      int
	}{
		{"bob", 1, 95},
		{"alice", 2, 80},
		{"carol", 3, 80},
	}
	for i, w := range want {
		if entries[i].Username != w.username || entries[i].Rank != w.rank || entries[i].AvgScorePercent != w.avg {
			t.Errorf("entry %d = {%s rank=%d avg=%d}, want {%s rank=%d avg=%d}",
				i, entries[i].Username, entries[i].Rank, entries[i].AvgScorePercent,
				w.username, w.rank, w.avg)
		}
	}
}

func TestComputeLeaderboardCommunityAverageIsMeanOfMeans(t *testing.T) {
	// alice logs four sessions averaging 0.9, bob one session at 0.5.
	// Mean of means is 0.7; a session-weighted pool would be 0.82.
	sessions := []models.Session{
		namedSession(1, "alice", statsNow.Add(-4*time.Hour), 0.9, 3600),
		namedSession(1, "alice", statsNow.Add(-3*time.Hour), 0.9, 3600),
		namedSession(1, "alice", statsNow.Add(-2*time.Hour), 0.9, 3600),
		namedSession(1, "alice", statsNow.Add(-90*time.Minute), 0.9, 3600),
		namedSession(2, "bob", statsNow.Add(-time.Hour), 0.5, 3600),
	}

	entries, avg, ok := ComputeLeaderboard(sessions, nil, statsNow, statsWindow)
	if !ok {
		t.Fatal("ok = false")
	}
	if avg != 70 {
		t.Errorf("community avg = %d, want 70", avg)
	}
	if entries[0].Sessions != 4 {
		t.Errorf("alice Sessions = %d, want 4", entries[0].Sessions)
	}
	if entries[0].TotalTimeHours != 4.0 {
		t.Errorf("alice TotalTimeHours = %v, want 4.0", entries[0].TotalTimeHours)
	}
}

func TestComputeLeaderboardExcludesOpenAndStaleSessions(t *testing.T) {
	open := models.Session{UserID: 1, Username: "alice", StartTime: statsNow.Add(-time.Minute), SessionScore: 1.0}
	sessions := []models.Session{
		open,
		namedSession(1, "alice", statsNow.Add(-time.Hour), 0.6, 3600),
		namedSession(2, "bob", statsNow.Add(-statsWindow-time.Hour), 0.9, 3600),
	}

	entries, _, ok := ComputeLeaderboard(sessions, nil, statsNow, statsWindow)
	if !ok {
		t.Fatal("ok = false")
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (open and out-of-window sessions excluded)", len(entries))
	}
	if entries[0].Username != "alice" || entries[0].AvgScorePercent != 60 {
		t.Errorf("entry = {%s %d}, want {alice 60}", entries[0].Username, entries[0].AvgScorePercent)
	}
	if entries[0].Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", entries[0].Sessions)
	}
}

func TestComputeLeaderboardNameFallbackChain(t *testing.T) {
	sessions := []models.Session{
		namedSession(1, "embedded", statsNow.Add(-time.Hour), 0.9, 3600),
		namedSession(2, "", statsNow.Add(-time.Hour), 0.8, 3600),
		namedSession(3, "", statsNow.Add(-time.Hour), 0.7, 3600),
	}
	resolve := func(userID uint) (string, bool) {
		if userID == 2 {
			return "resolved", true
		}
		return "", false
	}

	entries, _, ok := ComputeLeaderboard(sessions, resolve, statsNow, statsWindow)
	if !ok {
		t.Fatal("ok = false")
	}

	byUser := make(map[uint]string)
	for _, e := range entries {
		byUser[e.UserID] = e.Username
	}
	if byUser[1] != "embedded" {
		t.Errorf("user 1 name = %q, want the session-embedded username", byUser[1])
	}
	if byUser[2] != "resolved" {
		t.Errorf("user 2 name = %q, want the profile-resolved name", byUser[2])
	}
	if byUser[3] != "Anonymous" {
		t.Errorf("user 3 name = %q, want Anonymous", byUser[3])
	}
}
