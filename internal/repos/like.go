package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type PostLikeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, like *types.PostLike) error
	DeleteByPostAndUser(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error)
	ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.PostLike, error)
	CountByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error)
	DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
}

type postLikeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostLikeRepo(db *gorm.DB, baseLog *logger.Logger) PostLikeRepo {
	return &postLikeRepo{db: db, log: baseLog.With("repo", "PostLikeRepo")}
}

func (r *postLikeRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *postLikeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.PostLike) error {
	if err := r.resolve(tx).WithContext(ctx).Create(like).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.Conflict("user %s already liked post %s", like.UserID, like.PostID)
		}
		return err
	}
	return nil
}

// DeleteByPostAndUser reports whether a row was actually removed so the
// caller can tell a toggle-off apart from a no-op.
func (r *postLikeRepo) DeleteByPostAndUser(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
	res := r.resolve(tx).WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&types.PostLike{})
	return res.RowsAffected > 0, res.Error
}

func (r *postLikeRepo) Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.resolve(tx).WithContext(ctx).
		Model(&types.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *postLikeRepo) ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.PostLike, error) {
	var likes []*types.PostLike
	err := r.resolve(tx).WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *postLikeRepo) CountByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.resolve(tx).WithContext(ctx).
		Model(&types.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postLikeRepo) DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	return r.resolve(tx).WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&types.PostLike{}).Error
}
