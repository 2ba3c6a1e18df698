package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
	"github.com/Muunneebb/PostureHealthTracker/internal/tracker"
	ws "github.com/Muunneebb/PostureHealthTracker/internal/websocket"

	"go.uber.org/zap"
)

// Monitor drives the reading feed of each active session: it starts a
// source when a session begins, records every emitted reading through
// the aggregator, pushes live updates to the websocket hub, and turns
// the aggregator's edge-triggered alert events into one notification
// each.
type Monitor struct {
	log       *zap.Logger
	agg       *tracker.Aggregator
	newSource func() tracker.ReadingSource
	notifier  Notifier
	hub       *ws.Hub

	mu    sync.Mutex
	feeds map[string]context.CancelFunc
}

func NewMonitor(agg *tracker.Aggregator, newSource func() tracker.ReadingSource, notifier Notifier, hub *ws.Hub, log *zap.Logger) *Monitor {
	return &Monitor{
		log:       log,
		agg:       agg,
		newSource: newSource,
		notifier:  notifier,
		hub:       hub,
		feeds:     make(map[string]context.CancelFunc),
	}
}

// StartSession begins a session for the user and launches its reading
// feed. The tracker.ErrActiveSession error passes through when the
// user already has one running.
func (m *Monitor) StartSession(ctx context.Context, userID uint, username string) (*models.Session, error) {
	session, err := m.agg.Begin(ctx, userID, username, time.Now())
	if err != nil {
		return nil, err
	}
	m.startFeed(session.ID)
	return session, nil
}

// EndSession cancels the session's feed (if one is running) and
// completes it.
func (m *Monitor) EndSession(ctx context.Context, sessionID string) (*models.Session, error) {
	m.cancelFeed(sessionID)
	return m.agg.Complete(ctx, sessionID, time.Now())
}

// Record folds one reading into its session and fans out the side
// effects. It satisfies tracker.Emit and is also used directly by the
// ingestion endpoint for hardware-produced readings.
func (m *Monitor) Record(ctx context.Context, sessionID string, reading models.Reading) error {
	session, events, err := m.agg.Record(ctx, sessionID, reading)
	if err != nil {
		return err
	}

	if m.hub != nil {
		m.hub.BroadcastReading(sessionID, reading)
	}
	if events.BreakAlert {
		m.deliverAlert(sessionID, "Time for a Break!",
			"You have been sitting for more than 2 hours. Please take a break.")
	}
	if events.BuzzerAlert {
		m.deliverAlert(sessionID, "Excessive Posture Issues!",
			"The buzzer has triggered 5 times. Please check your posture.")
	}

	m.log.Debug("Reading recorded",
		zap.String("sessionID", sessionID),
		zap.Float64("score", session.SessionScore),
		zap.Int("buzzerCount", session.BuzzerCount),
	)
	return nil
}

// Shutdown cancels every running feed.
func (m *Monitor) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, cancel := range m.feeds {
		cancel()
		delete(m.feeds, id)
	}
}

func (m *Monitor) deliverAlert(sessionID, title, body string) {
	m.notifier.Notify(title, body)
	if m.hub != nil {
		m.hub.BroadcastAlert(sessionID, title, body)
	}
}

func (m *Monitor) startFeed(sessionID string) {
	ctx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	m.feeds[sessionID] = cancel
	m.mu.Unlock()

	source := m.newSource()
	go func() {
		defer m.cancelFeed(sessionID)

		if err := source.Run(ctx, sessionID, m.Record); err != nil {
			if !errors.Is(err, context.Canceled) {
				m.log.Warn("Reading feed stopped", zap.String("sessionID", sessionID), zap.Error(err))
			}
			return
		}

		// Reading count reached: the source signals completion.
		if _, err := m.agg.Complete(context.Background(), sessionID, time.Now()); err != nil &&
			!errors.Is(err, tracker.ErrSessionCompleted) {
			m.log.Error("Failed to complete session after feed finished",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()
}

func (m *Monitor) cancelFeed(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.feeds[sessionID]; ok {
		cancel()
		delete(m.feeds, sessionID)
	}
}
