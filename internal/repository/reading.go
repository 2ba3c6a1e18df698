package repository

import (
	"context"

	"github.com/Muunneebb/PostureHealthTracker/internal/database"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

// ReadingsForSession returns a session's readings in timestamp order.
func ReadingsForSession(ctx context.Context, sessionID string) ([]models.Reading, error) {
	var readings []models.Reading
	err := database.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&readings).Error
	return readings, err
}
