package repository

import (
	"context"
	"fmt"

	"github.com/Muunneebb/PostureHealthTracker/internal/database"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

// PurgeReport records how far a multi-step account deletion got. No
// atomic multi-record transaction is assumed available, so a failure
// partway through can leave orphaned records; the report lets callers
// distinguish that from a clean failure-before-start.
type PurgeReport struct {
	CompletedSteps []string `json:"completed_steps"`
	FailedStep     string   `json:"failed_step,omitempty"`
}

// PurgeUser removes everything stored for a user: readings first, then
// sessions, then the profile row. Best-effort sequential; stops at the
// first failure and reports which steps already completed.
func PurgeUser(ctx context.Context, userID uint) (PurgeReport, error) {
	var report PurgeReport
	db := database.DB.WithContext(ctx)

	step := "readings"
	err := db.Exec(
		`DELETE FROM readings WHERE session_id IN (SELECT id FROM sessions WHERE user_id = ?)`,
		userID,
	).Error
	if err != nil {
		report.FailedStep = step
		return report, fmt.Errorf("deleting readings: %w", err)
	}
	report.CompletedSteps = append(report.CompletedSteps, step)

	step = "sessions"
	if err := db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		report.FailedStep = step
		return report, fmt.Errorf("deleting sessions: %w", err)
	}
	report.CompletedSteps = append(report.CompletedSteps, step)

	step = "profile"
	if err := db.Delete(&models.User{}, userID).Error; err != nil {
		report.FailedStep = step
		return report, fmt.Errorf("deleting profile: %w", err)
	}
	report.CompletedSteps = append(report.CompletedSteps, step)

	return report, nil
}
