package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/normalization"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type CreateTopicInput struct {
	Title        string `json:"title" binding:"required"`
	MaterialLink string `json:"materialLink"`
	Notes        string `json:"notes"`
}

type CreatePlanInput struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	StartDate   *datatypes.Date    `json:"startDate"`
	EndDate     *datatypes.Date    `json:"endDate"`
	Visibility  string             `json:"visibility"`
	Tags        string             `json:"tags"`
	Topics      []CreateTopicInput `json:"topics"`
}

// UpdatePlanInput carries the mutable descriptive fields. Visibility,
// counters and topics all have their own dedicated paths.
type UpdatePlanInput struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	StartDate   *datatypes.Date `json:"startDate"`
	EndDate     *datatypes.Date `json:"endDate"`
	Tags        string          `json:"tags"`
}

// PlanDetail is the viewer-aware read model for a single plan.
type PlanDetail struct {
	Plan         *types.LearningPlan `json:"plan"`
	IsEnrolled   bool                `json:"isEnrolled"`
	Participants []*types.PublicUser `json:"participants"`
}

type LearningPlanService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreatePlanInput) (*types.LearningPlan, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePlanInput) (*types.LearningPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.LearningPlan, error)
	GetDetail(ctx context.Context, id, viewerID uuid.UUID) (*PlanDetail, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.LearningPlan, error)
	SetVisibility(ctx context.Context, id uuid.UUID, rawVisibility string) (*types.LearningPlan, error)
}

type learningPlanService struct {
	db             *gorm.DB
	log            *logger.Logger
	planRepo       repos.LearningPlanRepo
	topicRepo      repos.PlanTopicRepo
	enrollmentRepo repos.PlanEnrollmentRepo
}

func NewLearningPlanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	planRepo repos.LearningPlanRepo,
	topicRepo repos.PlanTopicRepo,
	enrollmentRepo repos.PlanEnrollmentRepo,
) LearningPlanService {
	return &learningPlanService{
		db:             db,
		log:            baseLog.With("service", "LearningPlanService"),
		planRepo:       planRepo,
		topicRepo:      topicRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *learningPlanService) Create(ctx context.Context, ownerID uuid.UUID, input CreatePlanInput) (*types.LearningPlan, error) {
	visibility := types.VisibilityPrivate
	if input.Visibility != "" {
		parsed, err := types.ParseVisibility(input.Visibility)
		if err != nil {
			return nil, err
		}
		visibility = parsed
	}

	now := time.Now()
	plan := &types.LearningPlan{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		UserID:      ownerID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Visibility:  visibility,
		Tags:        normalization.Tags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.planRepo.Create(ctx, tx, plan); err != nil {
			return err
		}
		for i, t := range input.Topics {
			topic := &types.PlanTopic{
				ID:             uuid.New(),
				Title:          t.Title,
				MaterialLink:   t.MaterialLink,
				Notes:          t.Notes,
				LearningPlanID: plan.ID,
				OrderIndex:     i,
				Status:         types.TopicNotStarted,
			}
			if err := s.topicRepo.Create(ctx, tx, topic); err != nil {
				return err
			}
			plan.Topics = append(plan.Topics, topic)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *learningPlanService) Update(ctx context.Context, id uuid.UUID, input UpdatePlanInput) (*types.LearningPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	plan.Title = input.Title
	plan.Description = input.Description
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate
	plan.Tags = normalization.Tags(input.Tags)
	if err := s.planRepo.Update(ctx, nil, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes the plan together with its topics and enrollments in
// a single transaction, so a half-deleted plan can never be observed.
func (s *learningPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.planRepo.GetByID(ctx, nil, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.topicRepo.DeleteByPlanID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.enrollmentRepo.DeleteByPlanID(ctx, tx, id); err != nil {
			return err
		}
		return s.planRepo.Delete(ctx, tx, id)
	})
}

func (s *learningPlanService) GetByID(ctx context.Context, id uuid.UUID) (*types.LearningPlan, error) {
	return s.planRepo.GetByIDWithTopics(ctx, nil, id)
}

// GetDetail is the viewer-aware read path. Non-owners are refused for
// PRIVATE plans; any other viewer of a non-PRIVATE plan bumps the view
// counter. Counter bumps are best-effort.
func (s *learningPlanService) GetDetail(ctx context.Context, id, viewerID uuid.UUID) (*PlanDetail, error) {
	plan, err := s.planRepo.GetByIDWithTopics(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if plan.Visibility == types.VisibilityPrivate && plan.UserID != viewerID {
		return nil, apperrors.Forbidden("learning plan %s is private", id)
	}
	if plan.Visibility != types.VisibilityPrivate && plan.UserID != viewerID {
		if err := s.planRepo.IncrementViewCount(ctx, nil, id); err != nil {
			s.log.Warn("view count increment failed", "error", err, "plan_id", id)
		} else {
			plan.ViewCount++
		}
	}

	detail := &PlanDetail{Plan: plan}
	enrolled, err := s.enrollmentRepo.Exists(ctx, nil, id, viewerID)
	if err != nil {
		return nil, err
	}
	detail.IsEnrolled = enrolled

	if plan.Visibility != types.VisibilityPrivate {
		enrollments, err := s.enrollmentRepo.ListByPlan(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		for _, e := range enrollments {
			if e.User != nil {
				detail.Participants = append(detail.Participants, e.User.Public())
			}
		}
	}
	return detail, nil
}

func (s *learningPlanService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.LearningPlan, error) {
	return s.planRepo.ListByUser(ctx, nil, ownerID)
}

func (s *learningPlanService) SetVisibility(ctx context.Context, id uuid.UUID, rawVisibility string) (*types.LearningPlan, error) {
	visibility, err := types.ParseVisibility(rawVisibility)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.SetVisibility(ctx, nil, id, visibility); err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, nil, id)
}
