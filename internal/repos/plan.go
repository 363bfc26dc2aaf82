package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type LearningPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plan *types.LearningPlan) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningPlan, error)
	GetByIDWithTopics(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningPlan, error)
	Update(ctx context.Context, tx *gorm.DB, plan *types.LearningPlan) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningPlan, error)
	SetVisibility(ctx context.Context, tx *gorm.DB, id uuid.UUID, visibility types.Visibility) error
	IncrementViewCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	IncrementEnrollmentCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DecrementEnrollmentCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListPublic(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error)
	SearchPublic(ctx context.Context, tx *gorm.DB, query string, req types.PageRequest) ([]*types.LearningPlan, int64, error)
	ListPopular(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error)
	ListRecent(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error)
}

type learningPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPlanRepo(db *gorm.DB, baseLog *logger.Logger) LearningPlanRepo {
	return &learningPlanRepo{db: db, log: baseLog.With("repo", "LearningPlanRepo")}
}

func (r *learningPlanRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *learningPlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.LearningPlan) error {
	return r.resolve(tx).WithContext(ctx).Create(plan).Error
}

func (r *learningPlanRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningPlan, error) {
	var plan types.LearningPlan
	err := r.resolve(tx).WithContext(ctx).Preload("User").First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("learning plan %s not found", id)
		}
		return nil, err
	}
	return &plan, nil
}

func (r *learningPlanRepo) GetByIDWithTopics(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningPlan, error) {
	var plan types.LearningPlan
	err := r.resolve(tx).WithContext(ctx).
		Preload("User").
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("learning plan %s not found", id)
		}
		return nil, err
	}
	return &plan, nil
}

func (r *learningPlanRepo) Update(ctx context.Context, tx *gorm.DB, plan *types.LearningPlan) error {
	return r.resolve(tx).WithContext(ctx).Save(plan).Error
}

func (r *learningPlanRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.LearningPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("learning plan %s not found", id)
	}
	return nil
}

func (r *learningPlanRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningPlan, error) {
	var plans []*types.LearningPlan
	err := r.resolve(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// SetVisibility assigns the visibility and nothing else. Counters and
// the rest of the row are untouched, so a visibility flip can never
// reset enrollment or view counts.
func (r *learningPlanRepo) SetVisibility(ctx context.Context, tx *gorm.DB, id uuid.UUID, visibility types.Visibility) error {
	res := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("id = ?", id).
		Update("visibility", visibility)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("learning plan %s not found", id)
	}
	return nil
}

// Counter updates are single atomic UPDATE statements. Concurrent
// increments from different requests serialize at the database instead
// of racing through read-modify-write in process memory.

func (r *learningPlanRepo) IncrementViewCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("learning plan %s not found", id)
	}
	return nil
}

func (r *learningPlanRepo) IncrementEnrollmentCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("id = ?", id).
		UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("learning plan %s not found", id)
	}
	return nil
}

// DecrementEnrollmentCount floors at zero. The guard lives in the WHERE
// clause so a racing decrement can never push the counter negative;
// touching zero rows on an already-zero counter is not an error.
func (r *learningPlanRepo) DecrementEnrollmentCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("id = ? AND enrollment_count > 0", id).
		UpdateColumn("enrollment_count", gorm.Expr("enrollment_count - 1")).Error
}

func (r *learningPlanRepo) ListPublic(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error) {
	q := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("visibility = ?", types.VisibilityPublic)
	return r.page(q, req, "id ASC")
}

func (r *learningPlanRepo) SearchPublic(ctx context.Context, tx *gorm.DB, query string, req types.PageRequest) ([]*types.LearningPlan, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("visibility = ?", types.VisibilityPublic).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern, pattern)
	return r.page(q, req, "id ASC")
}

func (r *learningPlanRepo) ListPopular(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error) {
	q := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("visibility = ?", types.VisibilityPublic)
	return r.page(q, req, "enrollment_count DESC, id ASC")
}

func (r *learningPlanRepo) ListRecent(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.LearningPlan, int64, error) {
	q := r.resolve(tx).WithContext(ctx).
		Model(&types.LearningPlan{}).
		Where("visibility = ?", types.VisibilityPublic)
	return r.page(q, req, "created_at DESC, id ASC")
}

func (r *learningPlanRepo) page(q *gorm.DB, req types.PageRequest, order string) ([]*types.LearningPlan, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var plans []*types.LearningPlan
	err := q.Session(&gorm.Session{}).
		Preload("User").
		Order(order).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}
