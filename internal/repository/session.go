package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/database"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"

	"gorm.io/gorm"
)

// Store adapts the sessions/readings tables to the aggregator's store
// interface. Lookups return (nil, nil) when no record matches.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (Store) CreateSession(ctx context.Context, s *models.Session) error {
	return database.DB.WithContext(ctx).Create(s).Error
}

func (Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := database.DB.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (Store) ActiveSessionForUser(ctx context.Context, userID uint) (*models.Session, error) {
	var session models.Session
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (Store) UpdateSession(ctx context.Context, s *models.Session) error {
	return database.DB.WithContext(ctx).Save(s).Error
}

func (Store) AddReading(ctx context.Context, r *models.Reading) error {
	return database.DB.WithContext(ctx).Create(r).Error
}

func (Store) CountScoredReadings(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Reading{}).
		Where("session_id = ? AND stress_score IS NOT NULL", sessionID).
		Count(&count).Error
	return count, err
}

// SessionsForUser returns a user's full session history, most recent
// first.
func SessionsForUser(ctx context.Context, userID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// SessionForUser fetches one session with an ownership check; returns
// (nil, nil) when the id doesn't exist or belongs to someone else.
func SessionForUser(ctx context.Context, id string, userID uint) (*models.Session, error) {
	var session models.Session
	err := database.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SessionsSince returns every user's sessions with a start time at or
// after the cutoff, in insertion order (the leaderboard tie-break
// depends on a deterministic scan order).
func SessionsSince(ctx context.Context, cutoff time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := database.DB.WithContext(ctx).
		Where("start_time >= ?", cutoff).
		Order("start_time ASC, id ASC").
		Find(&sessions).Error
	return sessions, err
}

// StaleActiveSessions finds open sessions whose feed went quiet: the
// most recent reading (or the start time, if nothing was ever
// recorded) is older than the cutoff.
func StaleActiveSessions(ctx context.Context, cutoff time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := database.DB.WithContext(ctx).
		Where(`end_time IS NULL AND COALESCE(
			(SELECT MAX(r.timestamp) FROM readings r WHERE r.session_id = sessions.id),
			sessions.start_time) < ?`, cutoff).
		Find(&sessions).Error
	return sessions, err
}
