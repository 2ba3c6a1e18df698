package handlers

import (
	"errors"
	"net/http"

	"github.com/Muunneebb/PostureHealthTracker/internal/auth"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	log      *zap.Logger
	provider *auth.Provider
}

func NewUserHandler(log *zap.Logger, provider *auth.Provider) *UserHandler {
	return &UserHandler{log: log, provider: provider}
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match"})
		return
	}

	if err := h.provider.ChangePassword(c.Request.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrRequiresRecentLogin):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect current password"})
		case errors.Is(err, auth.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", user.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type deleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// DeleteAccount removes the user and everything they own. Deletion is
// best-effort sequential across readings, sessions and the profile;
// the response includes how far it got so a partial failure (orphaned
// records) is distinguishable from one that never started.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Confirmation != "DELETE" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please type DELETE to confirm."})
		return
	}

	report, err := h.provider.DeleteIdentity(c.Request.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrRequiresRecentLogin) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Account deletion failed partway; some data may remain.",
			"report": report,
		})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}
