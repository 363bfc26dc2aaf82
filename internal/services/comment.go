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

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

type CommentService interface {
	Create(ctx context.Context, postID, authorID uuid.UUID, input CommentInput) (*types.Comment, error)
	Update(ctx context.Context, id uuid.UUID, input CommentInput) (*types.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*types.Comment, error)
}

type commentService struct {
	db          *gorm.DB
	log         *logger.Logger
	commentRepo repos.CommentRepo
	postRepo    repos.PostRepo
	notifier    NotificationService
}

func NewCommentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	commentRepo repos.CommentRepo,
	postRepo repos.PostRepo,
	notifier NotificationService,
) CommentService {
	return &commentService{
		db:          db,
		log:         baseLog.With("service", "CommentService"),
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifier:    notifier,
	}
}

func (s *commentService) Create(ctx context.Context, postID, authorID uuid.UUID, input CommentInput) (*types.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &types.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    authorID,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.Create(ctx, tx, comment); err != nil {
			return err
		}
		return s.postRepo.AdjustCommentCount(ctx, tx, postID, 1)
	})
	if err != nil {
		return nil, err
	}

	if post.UserID != authorID {
		if _, err := s.notifier.NotifyComment(ctx, authorID, post.UserID, postID, types.EntityPost); err != nil {
			s.log.Warn("comment notification failed", "error", err, "post_id", postID)
		}
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, id uuid.UUID, input CommentInput) (*types.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	comment.Content = input.Content
	if err := s.commentRepo.Update(ctx, nil, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.postRepo.AdjustCommentCount(ctx, tx, comment.PostID, -1)
	})
}

func (s *commentService) GetByID(ctx context.Context, id uuid.UUID) (*types.Comment, error) {
	return s.commentRepo.GetByID(ctx, nil, id)
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*types.Comment, error) {
	return s.commentRepo.ListByPost(ctx, nil, postID)
}
