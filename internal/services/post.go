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

type PostInput struct {
	Content  string `json:"content" binding:"required"`
	MediaURL string `json:"mediaUrl"`
}

type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, input PostInput) (*types.Post, error)
	Update(ctx context.Context, id uuid.UUID, input PostInput) (*types.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Post, error)
	Feed(ctx context.Context, req types.PageRequest) (*types.Page[*types.Post], error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Post, error)
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	HasUserLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}

type postService struct {
	db          *gorm.DB
	log         *logger.Logger
	postRepo    repos.PostRepo
	commentRepo repos.CommentRepo
	likeRepo    repos.PostLikeRepo
	notifier    NotificationService
}

func NewPostService(
	db *gorm.DB,
	baseLog *logger.Logger,
	postRepo repos.PostRepo,
	commentRepo repos.CommentRepo,
	likeRepo repos.PostLikeRepo,
	notifier NotificationService,
) PostService {
	return &postService{
		db:          db,
		log:         baseLog.With("service", "PostService"),
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		notifier:    notifier,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input PostInput) (*types.Post, error) {
	now := time.Now()
	post := &types.Post{
		ID:        uuid.New(),
		UserID:    authorID,
		Content:   input.Content,
		MediaURL:  input.MediaURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.postRepo.Create(ctx, nil, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, input PostInput) (*types.Post, error) {
	post, err := s.postRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	post.Content = input.Content
	post.MediaURL = input.MediaURL
	if err := s.postRepo.Update(ctx, nil, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, nil, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.DeleteByPostID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.likeRepo.DeleteByPostID(ctx, tx, id); err != nil {
			return err
		}
		return s.postRepo.Delete(ctx, tx, id)
	})
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*types.Post, error) {
	return s.postRepo.GetByID(ctx, nil, id)
}

func (s *postService) Feed(ctx context.Context, req types.PageRequest) (*types.Page[*types.Post], error) {
	posts, total, err := s.postRepo.ListFeed(ctx, nil, req)
	if err != nil {
		return nil, err
	}
	return types.NewPage(posts, req, total), nil
}

func (s *postService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Post, error) {
	return s.postRepo.ListByUser(ctx, nil, userID)
}

// ToggleLike flips the caller's like on a post and keeps the counter
// in step. The returned bool reports whether the post ends up liked.
func (s *postService) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return false, err
	}

	liked, err := s.likeRepo.Exists(ctx, nil, postID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			removed, err := s.likeRepo.DeleteByPostAndUser(ctx, tx, postID, userID)
			if err != nil {
				return err
			}
			if !removed {
				return nil
			}
			return s.postRepo.AdjustLikeCount(ctx, tx, postID, -1)
		})
		if err != nil {
			return true, err
		}
		return false, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &types.PostLike{
			ID:        uuid.New(),
			PostID:    postID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := s.likeRepo.Create(ctx, tx, like); err != nil {
			return err
		}
		return s.postRepo.AdjustLikeCount(ctx, tx, postID, 1)
	})
	if err != nil {
		// A concurrent like already landed; the post is liked either way.
		if apperrors.IsConflict(err) {
			return true, nil
		}
		return false, err
	}

	if post.UserID != userID {
		if _, err := s.notifier.NotifyLike(ctx, userID, post.UserID, postID, types.EntityPost); err != nil {
			s.log.Warn("like notification failed", "error", err, "post_id", postID)
		}
	}
	return true, nil
}

func (s *postService) HasUserLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return s.likeRepo.Exists(ctx, nil, postID, userID)
}
