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

type CommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Comment, error)
	Update(ctx context.Context, tx *gorm.DB, comment *types.Comment) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.Comment, error)
	DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return &commentRepo{db: db, log: baseLog.With("repo", "CommentRepo")}
}

func (r *commentRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *commentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) error {
	return r.resolve(tx).WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Comment, error) {
	var comment types.Comment
	err := r.resolve(tx).WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment %s not found", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) Update(ctx context.Context, tx *gorm.DB, comment *types.Comment) error {
	return r.resolve(tx).WithContext(ctx).Save(comment).Error
}

func (r *commentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("comment %s not found", id)
	}
	return nil
}

func (r *commentRepo) ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.Comment, error) {
	var comments []*types.Comment
	err := r.resolve(tx).WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepo) DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	return r.resolve(tx).WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&types.Comment{}).Error
}
