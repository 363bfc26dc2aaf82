package app

import (
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/cache"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Plan         services.LearningPlanService
	Topic        services.PlanTopicService
	Enrollment   services.PlanEnrollmentService
	Discovery    services.DiscoveryService
	Notification services.NotificationService
	Post         services.PostService
	Comment      services.CommentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, discoveryCache *cache.DiscoveryCache) Services {
	log.Info("Wiring services...")
	notification := services.NewNotificationService(db, log, r.Notification, r.User)
	return Services{
		Auth:         services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:         services.NewUserService(db, log, r.User),
		Plan:         services.NewLearningPlanService(db, log, r.LearningPlan, r.PlanTopic, r.Enrollment),
		Topic:        services.NewPlanTopicService(db, log, r.PlanTopic, r.LearningPlan),
		Enrollment:   services.NewPlanEnrollmentService(db, log, r.Enrollment, r.LearningPlan, r.PlanTopic, notification),
		Discovery:    services.NewDiscoveryService(db, log, r.LearningPlan, discoveryCache),
		Notification: notification,
		Post:         services.NewPostService(db, log, r.Post, r.Comment, r.PostLike, notification),
		Comment:      services.NewCommentService(db, log, r.Comment, r.Post, notification),
	}
}
