package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the slice of the document store the aggregator needs.
// Lookups return (nil, nil) when no record matches.
type Store interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ActiveSessionForUser(ctx context.Context, userID uint) (*models.Session, error)
	UpdateSession(ctx context.Context, s *models.Session) error
	AddReading(ctx context.Context, r *models.Reading) error
	CountScoredReadings(ctx context.Context, sessionID string) (int64, error)
}

// AlertEvents reports alert conditions that crossed their threshold on
// this particular reading. Unlike SessionAlerts it is edge-triggered:
// each flag is true at most once over a session's lifetime.
type AlertEvents struct {
	BreakAlert  bool
	BuzzerAlert bool
}

// Aggregator owns the active-to-completed transition of a session and
// the incremental recomputation of its derived fields as readings
// arrive. One session has a single logical timeline; readings can come
// from the synthetic feed and the device ingestion endpoint at once,
// so writes to one session are serialized internally.
type Aggregator struct {
	store       Store
	intervalSec int
	thresholds  Thresholds
	log         *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAggregator(store Store, readingInterval time.Duration, thresholds Thresholds, log *zap.Logger) *Aggregator {
	sec := int(readingInterval.Seconds())
	if sec < 1 {
		sec = 1
	}
	return &Aggregator{
		store:       store,
		intervalSec: sec,
		thresholds:  thresholds.fill(),
		log:         log,
		locks:       make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing writes to one session. The
// read-modify-write in Record must not interleave with another Record
// or Complete for the same id.
func (a *Aggregator) sessionLock(sessionID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[sessionID] = l
	}
	return l
}

// releaseLock drops a completed session's lock entry. Late writers
// racing the release fail on the completed check before mutating.
func (a *Aggregator) releaseLock(sessionID string) {
	a.mu.Lock()
	delete(a.locks, sessionID)
	a.mu.Unlock()
}

// Begin opens a new session for the user. It is rejected with
// ErrActiveSession while another session for the same user has no end
// time; callers must end that one first (the sweeper reclaims
// abandoned ones).
func (a *Aggregator) Begin(ctx context.Context, userID uint, username string, now time.Time) (*models.Session, error) {
	active, err := a.store.ActiveSessionForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("looking up active session: %w", err)
	}
	if active != nil {
		return nil, ErrActiveSession
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		StartTime: now.UTC(),
	}
	if err := a.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	a.log.Info("Session started",
		zap.String("sessionID", session.ID),
		zap.Uint("userID", userID),
	)
	return session, nil
}

// Record appends a reading to an active session and folds it into the
// session's derived fields: sit duration grows by one reading interval
// per seated sample, the buzzer count by one per triggered sample, and
// the session score is the running mean of all scored readings so far.
// The reading is persisted before the aggregate is updated.
func (a *Aggregator) Record(ctx context.Context, sessionID string, reading models.Reading) (*models.Session, AlertEvents, error) {
	var events AlertEvents

	lock := a.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := a.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, events, fmt.Errorf("loading session: %w", err)
	}
	if session == nil {
		return nil, events, ErrSessionNotFound
	}
	if !session.Active() {
		return nil, events, ErrSessionCompleted
	}

	reading.SessionID = session.ID
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	}
	if err := a.store.AddReading(ctx, &reading); err != nil {
		return nil, events, fmt.Errorf("storing reading: %w", err)
	}

	if reading.Seated {
		session.SitDuration += a.intervalSec
	}
	if reading.BuzzerTriggered {
		session.BuzzerCount++
	}
	if reading.StressScore != nil {
		n, err := a.store.CountScoredReadings(ctx, session.ID)
		if err != nil {
			return nil, events, fmt.Errorf("counting scored readings: %w", err)
		}
		if n < 1 {
			n = 1
		}
		// Running mean over scored readings; stays in [0,1].
		session.SessionScore += (*reading.StressScore - session.SessionScore) / float64(n)
	}

	alerts := a.thresholds.Evaluate(session.SitDuration, session.BuzzerCount)
	if alerts.BreakAlert && !session.BreakAlertTriggered {
		session.BreakAlertTriggered = true
		events.BreakAlert = true
	}
	if alerts.BuzzerAlert && !session.ExcessiveBuzzerAlert {
		session.ExcessiveBuzzerAlert = true
		events.BuzzerAlert = true
	}

	if err := a.store.UpdateSession(ctx, session); err != nil {
		return nil, events, fmt.Errorf("updating session: %w", err)
	}
	return session, events, nil
}

// Complete sets the session's end time. Score and sit duration are
// frozen from here on; further Record calls fail.
func (a *Aggregator) Complete(ctx context.Context, sessionID string, now time.Time) (*models.Session, error) {
	lock := a.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := a.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Active() {
		return nil, ErrSessionCompleted
	}

	end := now.UTC()
	session.EndTime = &end
	if err := a.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}
	a.releaseLock(sessionID)

	a.log.Info("Session completed",
		zap.String("sessionID", session.ID),
		zap.Int("duration", session.Duration(now)),
		zap.Float64("score", session.SessionScore),
		zap.Int("buzzerCount", session.BuzzerCount),
	)
	return session, nil
}
