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

type PostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, post *types.Post) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Post, error)
	Update(ctx context.Context, tx *gorm.DB, post *types.Post) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListFeed(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.Post, int64, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Post, error)
	AdjustLikeCount(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error
	AdjustCommentCount(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return &postRepo{db: db, log: baseLog.With("repo", "PostRepo")}
}

func (r *postRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *postRepo) Create(ctx context.Context, tx *gorm.DB, post *types.Post) error {
	return r.resolve(tx).WithContext(ctx).Create(post).Error
}

func (r *postRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Post, error) {
	var post types.Post
	err := r.resolve(tx).WithContext(ctx).Preload("User").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post %s not found", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, tx *gorm.DB, post *types.Post) error {
	return r.resolve(tx).WithContext(ctx).Save(post).Error
}

func (r *postRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("post %s not found", id)
	}
	return nil
}

func (r *postRepo) ListFeed(ctx context.Context, tx *gorm.DB, req types.PageRequest) ([]*types.Post, int64, error) {
	base := r.resolve(tx).WithContext(ctx).Model(&types.Post{})

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*types.Post
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Post, error) {
	var posts []*types.Post
	err := r.resolve(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// AdjustLikeCount applies an atomic delta, floored at zero for
// decrements the same way the plan enrollment counter is.
func (r *postRepo) AdjustLikeCount(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error {
	q := r.resolve(tx).WithContext(ctx).Model(&types.Post{})
	if delta < 0 {
		return q.Where("id = ? AND like_count > 0", id).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", -delta)).Error
	}
	return q.Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func (r *postRepo) AdjustCommentCount(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error {
	q := r.resolve(tx).WithContext(ctx).Model(&types.Post{})
	if delta < 0 {
		return q.Where("id = ? AND comment_count > 0", id).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", -delta)).Error
	}
	return q.Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error
}
