package app

import (
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	UserToken    repos.UserTokenRepo
	LearningPlan repos.LearningPlanRepo
	PlanTopic    repos.PlanTopicRepo
	Enrollment   repos.PlanEnrollmentRepo
	Notification repos.NotificationRepo
	Post         repos.PostRepo
	Comment      repos.CommentRepo
	PostLike     repos.PostLikeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		UserToken:    repos.NewUserTokenRepo(db, log),
		LearningPlan: repos.NewLearningPlanRepo(db, log),
		PlanTopic:    repos.NewPlanTopicRepo(db, log),
		Enrollment:   repos.NewPlanEnrollmentRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
		Post:         repos.NewPostRepo(db, log),
		Comment:      repos.NewCommentRepo(db, log),
		PostLike:     repos.NewPostLikeRepo(db, log),
	}
}
