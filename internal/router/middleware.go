package router

import (
	"net/http"
	"strings"

	"github.com/Muunneebb/PostureHealthTracker/internal/auth"
	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLoaderMiddleware checks for a userID in the session. If found,
// it loads the user from the database and adds it to the context. This
// ensures we don't have "zombie" sessions for users who no longer
// exist.
func UserLoaderMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get("userID").(uint)
		if !ok {
			// No user ID in session, proceed as a guest.
			c.Next()
			return
		}

		user, err := repository.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// User ID from session is invalid (user was deleted, etc.)
			// Clear the bad session and treat as a guest.
			session.Clear()
			session.Options(sessions.Options{Path: "/", MaxAge: -1})
			session.Save()
			c.Next()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// DeviceTokenMiddleware lets a hardware sensor authenticate with a
// Bearer token instead of a browser session. It only fills the user
// slot when the session middleware didn't already.
func DeviceTokenMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); exists {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		claims, err := auth.ParseDeviceToken([]byte(config.Conf.Server.DeviceSecret), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn("Rejected device token", zap.Error(err))
			c.Next()
			return
		}

		user, err := repository.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Warn("Device token for unknown user", zap.Uint("userID", claims.UserID))
			c.Next()
			return
		}

		c.Set("user", user)
		c.Set("device_auth", true)
		c.Next()
	}
}

// AuthRequired checks if a valid user was loaded into the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}
