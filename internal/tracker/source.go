package tracker

import (
	"context"
	"math/rand"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

// Emit delivers one reading for the session. The reading must be
// persisted before Emit returns; the source never buffers
// unacknowledged readings.
type Emit func(ctx context.Context, sessionID string, r models.Reading) error

// ReadingSource produces timestamped sensor samples for an active
// session at a fixed cadence. Run blocks until the configured reading
// count is reached (returning nil, which signals session completion to
// the caller) or the context is cancelled. No reading is emitted past
// cancellation.
type ReadingSource interface {
	Run(ctx context.Context, sessionID string, emit Emit) error
}

// SyntheticSource is the reference ReadingSource. It fakes the
// hardware feed: a real deployment swaps it for one backed by the IMU
// and pressure sensors while preserving the cadence/count contract.
type SyntheticSource struct {
	Interval time.Duration
	Count    int
	rng      *rand.Rand
}

func NewSyntheticSource(interval time.Duration, count int) *SyntheticSource {
	return &SyntheticSource{
		Interval: interval,
		Count:    count,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *SyntheticSource) Run(ctx context.Context, sessionID string, emit Emit) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for i := 0; i < s.Count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		// The select picks arbitrarily when both channels are ready;
		// never emit once cancelled.
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(ctx, sessionID, s.next()); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyntheticSource) next() models.Reading {
	stress := 0.5 + s.rng.Float64()*0.3
	return models.Reading{
		Timestamp:       time.Now().UTC(),
		Pitch:           15 + s.rng.Float64()*10,
		Roll:            s.rng.Float64()*10 - 5,
		FSRLeft:         45000 + s.rng.Float64()*5000,
		FSRRight:        48000 + s.rng.Float64()*5000,
		FSRCenter:       50000 + s.rng.Float64()*3000,
		StressScore:     &stress,
		Seated:          true,
		BuzzerTriggered: s.rng.Float64() < 0.1,
	}
}
