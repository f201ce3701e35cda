package handler

import (
	"log/slog"
	"net/http"
	"time"

	"devlink/backend/internal/auth"
	"devlink/backend/internal/hub"
	"devlink/backend/internal/repository"
	"devlink/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the services the API is built from.
type Dependencies struct {
	JWTSecret     string
	Users         repository.IdentityStore
	Follows       *service.FollowOrchestrator
	Notifications *service.NotificationService
	Gate          *service.FeedGate
	Hub           *hub.Hub
	Log           *slog.Logger
}

// getOrCreateRequestID gets or creates a request ID.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// RequestLogger writes one log record per request.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := getOrCreateRequestID(c)

		c.Next()

		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if userID, ok := auth.UserID(c); ok {
			attrs = append(attrs, slog.Uint64("user_id", uint64(userID)))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("HTTP request", attrs...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("HTTP request", attrs...)
		default:
			log.Info("HTTP request", attrs...)
		}
	}
}

// NewRouter wires every route of the API.
func NewRouter(deps Dependencies) *gin.Engine {
	userHandler := NewUserHandler(deps.Users, deps.Gate, deps.Log)
	followHandler := NewFollowHandler(deps.Follows, deps.Log)
	notificationHandler := NewNotificationHandler(deps.Notifications, deps.Follows, deps.Hub, deps.Log)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Log))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireUser := []gin.HandlerFunc{auth.AuthMiddleware(deps.JWTSecret), auth.RequireUser(deps.Users)}

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// User routes (protected)
		meRoutes := apiV1.Group("/users/me")
		meRoutes.Use(requireUser...)
		{
			meRoutes.GET("", userHandler.GetMe)
			meRoutes.PATCH("", userHandler.UpdateMe)
		}

		// Public profiles, personalised when a token is present
		publicRoutes := apiV1.Group("/users")
		publicRoutes.Use(auth.OptionalAuthMiddleware(deps.JWTSecret))
		{
			publicRoutes.GET("/:id", userHandler.GetUserByID)
			publicRoutes.GET("/:id/followers", userHandler.GetFollowers)
			publicRoutes.GET("/:id/following", userHandler.GetFollowing)
		}

		// Follow routes (protected)
		followRoutes := apiV1.Group("/users/:id/follow")
		followRoutes.Use(requireUser...)
		{
			followRoutes.POST("", followHandler.Follow)
			followRoutes.DELETE("", followHandler.Unfollow)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(requireUser...)
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.GET("/unread-count", notificationHandler.GetUnreadCount)
			notificationRoutes.GET("/stream", notificationHandler.Stream)
			notificationRoutes.POST("/read", notificationHandler.MarkManyRead) // Must be before /:id
			notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)
			notificationRoutes.POST("/:id/respond", notificationHandler.Respond)
		}
	}

	return router
}
