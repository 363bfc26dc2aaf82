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

type PlanEnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *types.PlanEnrollment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PlanEnrollment, error)
	GetByPlanAndUser(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) (*types.PlanEnrollment, error)
	Update(ctx context.Context, tx *gorm.DB, enrollment *types.PlanEnrollment) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PlanEnrollment, error)
	ListByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanEnrollment, error)
	Exists(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) (bool, error)
	CountByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int64, error)
	DeleteByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) error
}

type planEnrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) PlanEnrollmentRepo {
	return &planEnrollmentRepo{db: db, log: baseLog.With("repo", "PlanEnrollmentRepo")}
}

func (r *planEnrollmentRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create relies on the composite unique index over (learning_plan_id,
// user_id). A racing duplicate insert fails here and is reported as the
// same Conflict the pre-check would have produced.
func (r *planEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollment *types.PlanEnrollment) error {
	if err := r.resolve(tx).WithContext(ctx).Create(enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.Conflict("user %s is already enrolled in plan %s", enrollment.UserID, enrollment.LearningPlanID)
		}
		return err
	}
	return nil
}

func (r *planEnrollmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PlanEnrollment, error) {
	var enrollment types.PlanEnrollment
	err := r.resolve(tx).WithContext(ctx).Preload("User").First(&enrollment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("enrollment %s not found", id)
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *planEnrollmentRepo) GetByPlanAndUser(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) (*types.PlanEnrollment, error) {
	var enrollment types.PlanEnrollment
	err := r.resolve(tx).WithContext(ctx).
		Preload("User").
		First(&enrollment, "learning_plan_id = ? AND user_id = ?", planID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("enrollment not found for plan %s and user %s", planID, userID)
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *planEnrollmentRepo) Update(ctx context.Context, tx *gorm.DB, enrollment *types.PlanEnrollment) error {
	return r.resolve(tx).WithContext(ctx).Save(enrollment).Error
}

func (r *planEnrollmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.PlanEnrollment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("enrollment %s not found", id)
	}
	return nil
}

func (r *planEnrollmentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PlanEnrollment, error) {
	var enrollments []*types.PlanEnrollment
	err := r.resolve(tx).WithContext(ctx).
		Preload("LearningPlan").
		Where("user_id = ?", userID).
		Order("enrollment_date DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *planEnrollmentRepo) ListByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.PlanEnrollment, error) {
	var enrollments []*types.PlanEnrollment
	err := r.resolve(tx).WithContext(ctx).
		Preload("User").
		Where("learning_plan_id = ?", planID).
		Order("enrollment_date ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *planEnrollmentRepo) Exists(ctx context.Context, tx *gorm.DB, planID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.resolve(tx).WithContext(ctx).
		Model(&types.PlanEnrollment{}).
		Where("learning_plan_id = ? AND user_id = ?", planID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *planEnrollmentRepo) CountByPlan(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int64, error) {
	var count int64
	err := r.resolve(tx).WithContext(ctx).
		Model(&types.PlanEnrollment{}).
		Where("learning_plan_id = ?", planID).
		Count(&count).Error
	return count, err
}

func (r *planEnrollmentRepo) DeleteByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) error {
	return r.resolve(tx).WithContext(ctx).
		Where("learning_plan_id = ?", planID).
		Delete(&types.PlanEnrollment{}).Error
}
