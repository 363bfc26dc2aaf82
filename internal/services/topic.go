package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type TopicInput struct {
	Title        string `json:"title" binding:"required"`
	MaterialLink string `json:"materialLink"`
	Notes        string `json:"notes"`
	OrderIndex   int    `json:"orderIndex"`
}

type PlanTopicService interface {
	Create(ctx context.Context, planID uuid.UUID, input TopicInput) (*types.PlanTopic, error)
	Update(ctx context.Context, id uuid.UUID, input TopicInput) (*types.PlanTopic, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*types.PlanTopic, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.PlanTopic, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*types.PlanTopic, error)
}

type planTopicService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.PlanTopicRepo
	planRepo  repos.LearningPlanRepo
}

func NewPlanTopicService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.PlanTopicRepo,
	planRepo repos.LearningPlanRepo,
) PlanTopicService {
	return &planTopicService{
		db:        db,
		log:       baseLog.With("service", "PlanTopicService"),
		topicRepo: topicRepo,
		planRepo:  planRepo,
	}
}

func (s *planTopicService) Create(ctx context.Context, planID uuid.UUID, input TopicInput) (*types.PlanTopic, error) {
	if _, err := s.planRepo.GetByID(ctx, nil, planID); err != nil {
		return nil, err
	}
	now := time.Now()
	topic := &types.PlanTopic{
		ID:             uuid.New(),
		Title:          input.Title,
		MaterialLink:   input.MaterialLink,
		Notes:          input.Notes,
		LearningPlanID: planID,
		OrderIndex:     input.OrderIndex,
		Status:         types.TopicNotStarted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.topicRepo.Create(ctx, nil, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *planTopicService) Update(ctx context.Context, id uuid.UUID, input TopicInput) (*types.PlanTopic, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	topic.Title = input.Title
	topic.MaterialLink = input.MaterialLink
	topic.Notes = input.Notes
	topic.OrderIndex = input.OrderIndex
	if err := s.topicRepo.Update(ctx, nil, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *planTopicService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*types.PlanTopic, error) {
	status, err := types.ParseTopicStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if err := s.topicRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, err
	}
	return s.topicRepo.GetByID(ctx, nil, id)
}

func (s *planTopicService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.topicRepo.Delete(ctx, nil, id)
}

func (s *planTopicService) GetByID(ctx context.Context, id uuid.UUID) (*types.PlanTopic, error) {
	return s.topicRepo.GetByID(ctx, nil, id)
}

func (s *planTopicService) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*types.PlanTopic, error) {
	return s.topicRepo.ListByPlan(ctx, nil, planID)
}
