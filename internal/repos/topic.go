package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type PlanTopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topic *types.PlanTopic) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PlanTopic, error)
	Update(ctx context.Context, tx *gorm.DB, topic *types.PlanTopic) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.TopicStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanTopic, error)
	CountByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int64, error)
	DeleteByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) error
}

type planTopicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanTopicRepo(db *gorm.DB, baseLog *logger.Logger) PlanTopicRepo {
	return &planTopicRepo{db: db, log: baseLog.With("repo", "PlanTopicRepo")}
}

func (r *planTopicRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *planTopicRepo) Create(ctx context.Context, tx *gorm.DB, topic *types.PlanTopic) error {
	return r.resolve(tx).WithContext(ctx).Create(topic).Error
}

func (r *planTopicRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PlanTopic, error) {
	var topic types.PlanTopic
	err := r.resolve(tx).WithContext(ctx).First(&topic, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("plan topic %s not found", id)
		}
		return nil, err
	}
	return &topic, nil
}

func (r *planTopicRepo) Update(ctx context.Context, tx *gorm.DB, topic *types.PlanTopic) error {
	return r.resolve(tx).WithContext(ctx).Save(topic).Error
}

func (r *planTopicRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.TopicStatus) error {
	res := r.resolve(tx).WithContext(ctx).
		Model(&types.PlanTopic{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("plan topic %s not found", id)
	}
	return nil
}

func (r *planTopicRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.PlanTopic{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("plan topic %s not found", id)
	}
	return nil
}

func (r *planTopicRepo) ListByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanTopic, error) {
	var topics []*types.PlanTopic
	err := r.resolve(tx).WithContext(ctx).
		Where("learning_plan_id = ?", planID).
		Order("order_index ASC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *planTopicRepo) CountByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int64, error) {
	var count int64
	err := r.resolve(tx).WithContext(ctx).
		Model(&types.PlanTopic{}).
		Where("learning_plan_id = ?", planID).
		Count(&count).Error
	return count, err
}

func (r *planTopicRepo) DeleteByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) error {
	return r.resolve(tx).WithContext(ctx).
		Where("learning_plan_id = ?", planID).
		Delete(&types.PlanTopic{}).Error
}
