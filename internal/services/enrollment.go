package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type PlanEnrollmentService interface {
	Enroll(ctx context.Context, planID, userID uuid.UUID) (*types.PlanEnrollment, error)
	Unenroll(ctx context.Context, enrollmentID uuid.UUID) error
	UpdateProgress(ctx context.Context, enrollmentID uuid.UUID, completedTopics int) (*types.PlanEnrollment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.PlanEnrollment, error)
	GetByPlanAndUser(ctx context.Context, planID, userID uuid.UUID) (*types.PlanEnrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.PlanEnrollment, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*types.PlanEnrollment, error)
	IsUserEnrolled(ctx context.Context, planID, userID uuid.UUID) (bool, error)
}

type planEnrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.PlanEnrollmentRepo
	planRepo       repos.LearningPlanRepo
	topicRepo      repos.PlanTopicRepo
	notifier       NotificationService
}

func NewPlanEnrollmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	enrollmentRepo repos.PlanEnrollmentRepo,
	planRepo repos.LearningPlanRepo,
	topicRepo repos.PlanTopicRepo,
	notifier NotificationService,
) PlanEnrollmentService {
	return &planEnrollmentService{
		db:             db,
		log:            baseLog.With("service", "PlanEnrollmentService"),
		enrollmentRepo: enrollmentRepo,
		planRepo:       planRepo,
		topicRepo:      topicRepo,
		notifier:       notifier,
	}
}

// Enroll joins a user to a plan. Owners may enroll in their own plan
// regardless of visibility; everyone else needs PUBLIC or SHARED. The
// enrollment row and the plan counter move in the same transaction,
// and a concurrent duplicate insert surfaces as the same conflict as
// the pre-check.
func (s *planEnrollmentService) Enroll(ctx context.Context, planID, userID uuid.UUID) (*types.PlanEnrollment, error) {
	plan, err := s.planRepo.GetByID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}
	if plan.Visibility == types.VisibilityPrivate && plan.UserID != userID {
		return nil, apperrors.Forbidden("learning plan %s is private", planID)
	}

	exists, err := s.enrollmentRepo.Exists(ctx, nil, planID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("user %s is already enrolled in plan %s", userID, planID)
	}

	totalTopics, err := s.topicRepo.CountByPlan(ctx, nil, planID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	enrollment := &types.PlanEnrollment{
		ID:               uuid.New(),
		LearningPlanID:   planID,
		UserID:           userID,
		EnrollmentDate:   now,
		CompletedTopics:  0,
		TotalTopics:      int(totalTopics),
		LastActivityDate: now,
		Status:           types.EnrollmentActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.enrollmentRepo.Create(ctx, tx, enrollment); err != nil {
			return err
		}
		return s.planRepo.IncrementEnrollmentCount(ctx, tx, planID)
	})
	if err != nil {
		return nil, err
	}

	if plan.UserID != userID {
		if _, err := s.notifier.NotifyEnrollment(ctx, userID, plan.UserID, planID); err != nil {
			s.log.Warn("enrollment notification failed", "error", err, "plan_id", planID, "user_id", userID)
		}
	}
	return enrollment, nil
}

func (s *planEnrollmentService) Unenroll(ctx context.Context, enrollmentID uuid.UUID) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, nil, enrollmentID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.enrollmentRepo.Delete(ctx, tx, enrollmentID); err != nil {
			return err
		}
		return s.planRepo.DecrementEnrollmentCount(ctx, tx, enrollment.LearningPlanID)
	})
}

// UpdateProgress records how many topics the learner has finished and
// refreshes the derived percentage. Reaching 100% flips the status to
// COMPLETED once; it never flips back even if progress is later
// reported lower.
func (s *planEnrollmentService) UpdateProgress(ctx context.Context, enrollmentID uuid.UUID, completedTopics int) (*types.PlanEnrollment, error) {
	if completedTopics < 0 {
		return nil, apperrors.BadRequest("completedTopics must not be negative, got %d", completedTopics)
	}
	enrollment, err := s.enrollmentRepo.GetByID(ctx, nil, enrollmentID)
	if err != nil {
		return nil, err
	}
	enrollment.CompletedTopics = completedTopics
	enrollment.RecomputeProgress(time.Now())
	if enrollment.ProgressPercentage == 100 && enrollment.Status == types.EnrollmentActive {
		enrollment.Status = types.EnrollmentCompleted
	}
	if err := s.enrollmentRepo.Update(ctx, nil, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *planEnrollmentService) GetByID(ctx context.Context, id uuid.UUID) (*types.PlanEnrollment, error) {
	return s.enrollmentRepo.GetByID(ctx, nil, id)
}

func (s *planEnrollmentService) GetByPlanAndUser(ctx context.Context, planID, userID uuid.UUID) (*types.PlanEnrollment, error) {
	return s.enrollmentRepo.GetByPlanAndUser(ctx, nil, planID, userID)
}

func (s *planEnrollmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.PlanEnrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, nil, userID)
}

func (s *planEnrollmentService) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*types.PlanEnrollment, error) {
	return s.enrollmentRepo.ListByPlan(ctx, nil, planID)
}

func (s *planEnrollmentService) IsUserEnrolled(ctx context.Context, planID, userID uuid.UUID) (bool, error) {
	return s.enrollmentRepo.Exists(ctx, nil, planID, userID)
}
