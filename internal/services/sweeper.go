package services

import (
	"context"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/repository"

	"go.uber.org/zap"
)

// Sweeper reclaims abandoned sessions. A browser closed mid-session
// never calls the end endpoint, and an open session blocks the user
// from starting a new one, so any open session whose feed has gone
// quiet for longer than staleAfter gets force-completed.
type Sweeper struct {
	log        *zap.Logger
	monitor    *Monitor
	interval   time.Duration
	staleAfter time.Duration
	quit       chan struct{}
}

func NewSweeper(monitor *Monitor, interval, staleAfter time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		log:        log,
		monitor:    monitor,
		interval:   interval,
		staleAfter: staleAfter,
		quit:       make(chan struct{}),
	}
}

// Start runs the sweeper in a goroutine.
func (s *Sweeper) Start() {
	s.log.Info("Starting stale session sweeper...")
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts the sweep loop.
func (s *Sweeper) Stop() {
	close(s.quit)
}

func (s *Sweeper) sweep() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.staleAfter)

	sessions, err := repository.StaleActiveSessions(ctx, cutoff)
	if err != nil {
		s.log.Error("Failed to query stale sessions", zap.Error(err))
		return
	}

	for _, session := range sessions {
		if _, err := s.monitor.EndSession(ctx, session.ID); err != nil {
			s.log.Error("Failed to close stale session",
				zap.String("sessionID", session.ID), zap.Error(err))
			continue
		}
		s.log.Info("Closed stale session",
			zap.String("sessionID", session.ID),
			zap.Uint("userID", session.UserID),
		)
	}
}
