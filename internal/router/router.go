package router

import (
	"net/http"
	"time"

	"github.com/Muunneebb/PostureHealthTracker/internal/auth"
	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	"github.com/Muunneebb/PostureHealthTracker/internal/handlers"
	"github.com/Muunneebb/PostureHealthTracker/internal/services"
	"github.com/Muunneebb/PostureHealthTracker/internal/websocket"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(429, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, provider *auth.Provider, monitor *services.Monitor, hub *websocket.Hub) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("posture_session", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(UserLoaderMiddleware(log))
	router.Use(DeviceTokenMiddleware(log))
	router.Use(CSRFProtection())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log, provider)
	sessionHandler := handlers.NewSessionHandler(log, monitor)
	dashboardHandler := handlers.NewDashboardHandler(log)
	leaderboardHandler := handlers.NewLeaderboardHandler(log)
	analyticsHandler := handlers.NewAnalyticsHandler(log)
	userHandler := handlers.NewUserHandler(log, provider)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.POST("/register", limiter, authHandler.Register)

	authorized := router.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(hub, c.Writer, c.Request)
		})

		apiRoutes := authorized.Group("/api")
		{
			apiRoutes.POST("/start-session", sessionHandler.Start)
			apiRoutes.POST("/session/:id/readings", sessionHandler.AddReading)
			apiRoutes.POST("/session/:id/end", sessionHandler.End)
			apiRoutes.GET("/session/:id/stats", sessionHandler.Stats)
			apiRoutes.GET("/session/:id", sessionHandler.Detail)
			apiRoutes.GET("/user/sessions", sessionHandler.List)
			apiRoutes.GET("/user/stats", dashboardHandler.UserStats)
			apiRoutes.GET("/leaderboard", leaderboardHandler.Get)
			apiRoutes.GET("/analytics/chart", analyticsHandler.Chart)
			apiRoutes.POST("/device-token", authHandler.DeviceToken)
		}

		profileRoutes := authorized.Group("/profile")
		{
			profileRoutes.POST("/update-password", userHandler.UpdatePassword)
			profileRoutes.POST("/delete", userHandler.DeleteAccount)
		}
	}

	return router
}
