package handlers

import (
	"net/http"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"
	"github.com/Muunneebb/PostureHealthTracker/internal/stats"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const leaderboardCacheKey = "leaderboard"

type LeaderboardHandler struct {
	log   *zap.Logger
	cache *gocache.Cache
}

func NewLeaderboardHandler(log *zap.Logger) *LeaderboardHandler {
	// The leaderboard is the one cross-user scan; cache it briefly so a
	// busy dashboard doesn't re-run it on every page load.
	return &LeaderboardHandler{
		log:   log,
		cache: gocache.New(30*time.Second, time.Minute),
	}
}

// Get returns the community comparison over the trailing window. Any
// backend failure degrades to an empty leaderboard.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	if cached, ok := h.cache.Get(leaderboardCacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	now := time.Now()
	cutoff := now.Add(-config.Conf.Monitor.Window())

	sessions, err := repository.SessionsSince(c.Request.Context(), cutoff)
	if err != nil {
		h.log.Error("Failed to load leaderboard sessions", zap.Error(err))
		c.JSON(http.StatusOK, emptyLeaderboard())
		return
	}

	seen := make(map[uint]bool)
	var userIDs []uint
	for i := range sessions {
		if !seen[sessions[i].UserID] {
			seen[sessions[i].UserID] = true
			userIDs = append(userIDs, sessions[i].UserID)
		}
	}

	names, err := repository.UsernamesByID(c.Request.Context(), userIDs)
	if err != nil {
		h.log.Error("Failed to resolve leaderboard usernames", zap.Error(err))
		names = map[uint]string{}
	}
	resolver := func(userID uint) (string, bool) {
		name, ok := names[userID]
		return name, ok
	}

	entries, communityAvg, ok := stats.ComputeLeaderboard(sessions, resolver, now, config.Conf.Monitor.Window())
	if !ok {
		c.JSON(http.StatusOK, emptyLeaderboard())
		return
	}

	resp := gin.H{
		"leaderboard":   entries,
		"community_avg": communityAvg,
		"has_data":      true,
	}
	h.cache.SetDefault(leaderboardCacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

func emptyLeaderboard() gin.H {
	return gin.H{
		"leaderboard": []stats.LeaderboardEntry{},
		"has_data":    false,
	}
}
