// Package auth is the identity-provider boundary: sign-up, sign-in,
// password change and identity deletion, surfaced through a small set
// of error kinds the handlers translate into user-facing messages.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Muunneebb/PostureHealthTracker/internal/models"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"
	"github.com/Muunneebb/PostureHealthTracker/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrWeakPassword        = errors.New("password does not meet complexity requirements")
	ErrRequiresRecentLogin = errors.New("re-authentication failed")
	ErrEmailTaken          = errors.New("email or username already registered")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidUsername     = errors.New("invalid username")
)

type Provider struct {
	log *zap.Logger
}

func NewProvider(log *zap.Logger) *Provider {
	return &Provider{log: log}
}

// SignUp validates the registration input, hashes the password and
// creates the user profile.
func (p *Provider) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !utils.IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !utils.IsComplexPassword(password) {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := repository.CreateUser(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	p.log.Info("User registered", zap.Uint("userID", user.ID))
	return user, nil
}

// SignIn verifies the credentials and returns the user.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := repository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword requires fresh re-authentication with the current
// password before accepting the new one.
func (p *Provider) ChangePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) error {
	if !user.CheckPassword(currentPassword) {
		return ErrRequiresRecentLogin
	}
	if !utils.IsComplexPassword(newPassword) {
		return ErrWeakPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return repository.UpdateUserPassword(ctx, user.ID, string(hashedPassword))
}

// DeleteIdentity removes the identity together with all owned records.
// Deletion is best-effort sequential; the report says how far it got.
func (p *Provider) DeleteIdentity(ctx context.Context, user *models.User, password string) (repository.PurgeReport, error) {
	if !user.CheckPassword(password) {
		return repository.PurgeReport{}, ErrRequiresRecentLogin
	}
	report, err := repository.PurgeUser(ctx, user.ID)
	if err != nil {
		p.log.Error("Account purge failed partway",
			zap.Uint("userID", user.ID),
			zap.Strings("completed", report.CompletedSteps),
			zap.String("failed", report.FailedStep),
			zap.Error(err),
		)
		return report, err
	}
	p.log.Info("Account deleted", zap.Uint("userID", user.ID))
	return report, nil
}
