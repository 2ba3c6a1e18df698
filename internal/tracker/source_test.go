package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

func TestSyntheticSourceEmitsConfiguredCount(t *testing.T) {
	source := NewSyntheticSource(time.Millisecond, 5)

	var got []models.Reading
	err := source.Run(context.Background(), "s1", func(ctx context.Context, sessionID string, r models.Reading) error {
		if sessionID != "s1" {
			t.Errorf("sessionID = %q, want s1", sessionID)
		}
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("emitted %d readings, want 5", len(got))
	}

	for i, r := range got {
		if r.StressScore == nil {
			t.Fatalf("reading %d has no stress score", i)
		}
		if *r.StressScore < 0.5 || *r.StressScore > 0.8 {
			t.Errorf("reading %d stress score %v outside [0.5, 0.8]", i, *r.StressScore)
		}
		if r.Pitch < 15 || r.Pitch > 25 {
			t.Errorf("reading %d pitch %v outside [15, 25]", i, r.Pitch)
		}
		if !r.Seated {
			t.Errorf("reading %d not seated", i)
		}
		if r.Timestamp.IsZero() {
			t.Errorf("reading %d has zero timestamp", i)
		}
	}
}

func TestSyntheticSourceStopsOnCancel(t *testing.T) {
	source := NewSyntheticSource(time.Millisecond, 1000)
	ctx, cancel := context.WithCancel(context.Background())

	emitted := 0
	err := source.Run(ctx, "s1", func(ctx context.Context, sessionID string, r models.Reading) error {
		emitted++
		if emitted == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if emitted != 3 {
		t.Errorf("emitted %d readings, want 3 (none after cancellation)", emitted)
	}
}

func TestSyntheticSourceStopsOnEmitError(t *testing.T) {
	source := NewSyntheticSource(time.Millisecond, 1000)
	boom := errors.New("store down")

	emitted := 0
	err := source.Run(context.Background(), "s1", func(ctx context.Context, sessionID string, r models.Reading) error {
		emitted++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run returned %v, want the emit error", err)
	}
	if emitted != 1 {
		t.Errorf("emitted %d readings, want 1", emitted)
	}
}
