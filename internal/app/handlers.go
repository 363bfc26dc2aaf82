package app

import (
	"github.com/gin-gonic/gin"

	"github.com/skillloop/skillloop-backend/internal/handlers"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/middleware"
	"github.com/skillloop/skillloop-backend/internal/server"
)

type Handlers struct {
	Healthcheck  *handlers.HealthcheckHandler
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Plan         *handlers.LearningPlanHandler
	Topic        *handlers.PlanTopicHandler
	Enrollment   *handlers.PlanEnrollmentHandler
	Discovery    *handlers.DiscoveryHandler
	Notification *handlers.NotificationHandler
	Post         *handlers.PostHandler
}

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck:  handlers.NewHealthcheckHandler(),
		Auth:         handlers.NewAuthHandler(log, s.Auth),
		User:         handlers.NewUserHandler(log, s.User),
		Plan:         handlers.NewLearningPlanHandler(log, s.Plan),
		Topic:        handlers.NewPlanTopicHandler(log, s.Topic, s.Plan),
		Enrollment:   handlers.NewPlanEnrollmentHandler(log, s.Enrollment),
		Discovery:    handlers.NewDiscoveryHandler(log, s.Discovery),
		Notification: handlers.NewNotificationHandler(log, s.Notification),
		Post:         handlers.NewPostHandler(log, s.Post, s.Comment),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
	}
}

func wireRouter(cfg Config, h Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:         cfg.ServiceName,
		AllowOrigins:        cfg.AllowOrigins,
		AuthMiddleware:      mw.Auth,
		HealthcheckHandler:  h.Healthcheck,
		AuthHandler:         h.Auth,
		UserHandler:         h.User,
		PlanHandler:         h.Plan,
		TopicHandler:        h.Topic,
		EnrollmentHandler:   h.Enrollment,
		DiscoveryHandler:    h.Discovery,
		NotificationHandler: h.Notification,
		PostHandler:         h.Post,
	})
}
