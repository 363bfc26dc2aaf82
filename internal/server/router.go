package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/skillloop/skillloop-backend/internal/handlers"
	"github.com/skillloop/skillloop-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName         string
	AllowOrigins        []string
	AuthMiddleware      *middleware.AuthMiddleware
	HealthcheckHandler  *handlers.HealthcheckHandler
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	PlanHandler         *handlers.LearningPlanHandler
	TopicHandler        *handlers.PlanTopicHandler
	EnrollmentHandler   *handlers.PlanEnrollmentHandler
	DiscoveryHandler    *handlers.DiscoveryHandler
	NotificationHandler *handlers.NotificationHandler
	PostHandler         *handlers.PostHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	api := router.Group("/api")

	// Public
	api.POST("/auth/register", cfg.AuthHandler.Register)
	api.POST("/auth/login", cfg.AuthHandler.Login)
	api.POST("/auth/refresh", cfg.AuthHandler.Refresh)

	discover := api.Group("/learning-plans/discover")
	discover.GET("/public", cfg.DiscoveryHandler.ListPublic)
	discover.GET("/search", cfg.DiscoveryHandler.Search)
	discover.GET("/popular", cfg.DiscoveryHandler.ListPopular)
	discover.GET("/recent", cfg.DiscoveryHandler.ListRecent)

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	protected.GET("/users/me", cfg.UserHandler.Me)
	protected.PUT("/users/me", cfg.UserHandler.UpdateMe)
	protected.GET("/users/username/:username", cfg.UserHandler.GetByUsername)
	protected.GET("/users/:id", cfg.UserHandler.GetByID)

	plans := protected.Group("/learning-plans")
	plans.POST("", cfg.PlanHandler.Create)
	plans.GET("/user", cfg.PlanHandler.ListMine)
	plans.GET("/:id", cfg.PlanHandler.Get)
	plans.PUT("/:id", cfg.PlanHandler.Update)
	plans.DELETE("/:id", cfg.PlanHandler.Delete)
	plans.PATCH("/:id/visibility", cfg.PlanHandler.SetVisibility)

	topics := protected.Group("/plan-topics")
	topics.POST("/plan/:planId", cfg.TopicHandler.Create)
	topics.GET("/plan/:planId", cfg.TopicHandler.ListByPlan)
	topics.PUT("/:id", cfg.TopicHandler.Update)
	topics.PATCH("/:id/status", cfg.TopicHandler.UpdateStatus)
	topics.DELETE("/:id", cfg.TopicHandler.Delete)

	enrollments := protected.Group("/plan-enrollments")
	enrollments.POST("/enroll/:planId", cfg.EnrollmentHandler.Enroll)
	enrollments.DELETE("/:id", cfg.EnrollmentHandler.Unenroll)
	enrollments.PATCH("/:id/progress", cfg.EnrollmentHandler.UpdateProgress)
	enrollments.GET("/user", cfg.EnrollmentHandler.ListMine)
	enrollments.GET("/plan/:planId", cfg.EnrollmentHandler.ListByPlan)
	enrollments.GET("/status/:planId", cfg.EnrollmentHandler.EnrollmentStatus)

	notifications := protected.Group("/notifications")
	notifications.GET("", cfg.NotificationHandler.List)
	notifications.GET("/unread-count", cfg.NotificationHandler.UnreadCount)
	notifications.PATCH("/:id/read", cfg.NotificationHandler.MarkRead)
	notifications.PATCH("/mark-all-read", cfg.NotificationHandler.MarkAllRead)
	notifications.DELETE("/:id", cfg.NotificationHandler.Delete)

	posts := protected.Group("/posts")
	posts.POST("", cfg.PostHandler.Create)
	posts.GET("/feed", cfg.PostHandler.Feed)
	posts.GET("/user/:userId", cfg.PostHandler.ListByUser)
	posts.GET("/:id", cfg.PostHandler.Get)
	posts.PUT("/:id", cfg.PostHandler.Update)
	posts.DELETE("/:id", cfg.PostHandler.Delete)
	posts.POST("/:id/like", cfg.PostHandler.ToggleLike)
	posts.POST("/:id/comments", cfg.PostHandler.CreateComment)
	posts.GET("/:id/comments", cfg.PostHandler.ListComments)
	posts.PUT("/comments/:commentId", cfg.PostHandler.UpdateComment)
	posts.DELETE("/comments/:commentId", cfg.PostHandler.DeleteComment)

	return router
}
