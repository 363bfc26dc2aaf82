package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

// NotificationService is the fan-out side channel for likes, comments,
// enrollments and system messages. Delivery is best-effort: a failure
// here must never fail or roll back the operation that triggered it,
// so every persistence problem is swallowed after logging. The only
// error that escapes Create is an unresolvable sender on a
// non-system notification.
type NotificationService interface {
	Create(ctx context.Context, tx *gorm.DB, senderID *uuid.UUID, receiverID uuid.UUID, nType types.NotificationType, message string, relatedEntityID *uuid.UUID, relatedEntityType string) (*types.Notification, error)
	NotifyLike(ctx context.Context, likerID, contentOwnerID, contentID uuid.UUID, contentType string) (*types.Notification, error)
	NotifyComment(ctx context.Context, commenterID, contentOwnerID, contentID uuid.UUID, contentType string) (*types.Notification, error)
	NotifyEnrollment(ctx context.Context, enrollerID, planOwnerID, planID uuid.UUID) (*types.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID, req types.PageRequest) (*types.Page[*types.Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) (*types.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
	userRepo         repos.UserRepo
}

func NewNotificationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	notificationRepo repos.NotificationRepo,
	userRepo repos.UserRepo,
) NotificationService {
	return &notificationService{
		db:               db,
		log:              baseLog.With("service", "NotificationService"),
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *notificationService) Create(
	ctx context.Context,
	tx *gorm.DB,
	senderID *uuid.UUID,
	receiverID uuid.UUID,
	nType types.NotificationType,
	message string,
	relatedEntityID *uuid.UUID,
	relatedEntityType string,
) (*types.Notification, error) {
	// Self-notification is silently absorbed. System messages to self
	// are allowed so account-level announcements still land.
	if senderID != nil && *senderID == receiverID && nType != types.NotificationSystemMessage {
		return nil, nil
	}

	var sender *types.User
	if senderID != nil {
		resolved, err := s.userRepo.GetByID(ctx, tx, *senderID)
		if err != nil {
			s.log.Warn("notification sender lookup failed", "error", err, "sender_id", *senderID, "type", nType)
			if nType != types.NotificationSystemMessage {
				return nil, err
			}
			// System messages fall back to a null sender.
			senderID = nil
		} else {
			sender = resolved
		}
	}

	if _, err := s.userRepo.GetByID(ctx, tx, receiverID); err != nil {
		// Receiver is gone: drop the event rather than fail the caller.
		s.log.Warn("notification receiver lookup failed, dropping event", "error", err, "receiver_id", receiverID, "type", nType)
		return nil, nil
	}

	notification := &types.Notification{
		ID:                uuid.New(),
		Type:              nType,
		SenderID:          senderID,
		Sender:            sender,
		ReceiverID:        receiverID,
		Message:           message,
		Read:              false,
		RelatedEntityID:   relatedEntityID,
		RelatedEntityType: relatedEntityType,
		CreatedAt:         time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
		s.log.Warn("notification persist failed, dropping event", "error", err, "receiver_id", receiverID, "type", nType)
		return nil, nil
	}
	return notification, nil
}

func (s *notificationService) NotifyLike(ctx context.Context, likerID, contentOwnerID, contentID uuid.UUID, contentType string) (*types.Notification, error) {
	message := "liked your " + strings.ToLower(contentType)
	return s.Create(ctx, nil, &likerID, contentOwnerID, types.NotificationLike, message, &contentID, contentType)
}

func (s *notificationService) NotifyComment(ctx context.Context, commenterID, contentOwnerID, contentID uuid.UUID, contentType string) (*types.Notification, error) {
	message := "commented on your " + strings.ToLower(contentType)
	return s.Create(ctx, nil, &commenterID, contentOwnerID, types.NotificationComment, message, &contentID, contentType)
}

func (s *notificationService) NotifyEnrollment(ctx context.Context, enrollerID, planOwnerID, planID uuid.UUID) (*types.Notification, error) {
	return s.Create(ctx, nil, &enrollerID, planOwnerID, types.NotificationEnrollment, "enrolled in your learning plan", &planID, types.EntityLearningPlan)
}

func (s *notificationService) GetByID(ctx context.Context, id uuid.UUID) (*types.Notification, error) {
	return s.notificationRepo.GetByID(ctx, nil, id)
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID, req types.PageRequest) (*types.Page[*types.Notification], error) {
	notifications, total, err := s.notificationRepo.ListByReceiver(ctx, nil, userID, req)
	if err != nil {
		return nil, err
	}
	return types.NewPage(notifications, req, total), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, nil, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) (*types.Notification, error) {
	if err := s.notificationRepo.MarkRead(ctx, nil, id); err != nil {
		return nil, err
	}
	return s.notificationRepo.GetByID(ctx, nil, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, nil, userID)
}

func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.Delete(ctx, nil, id)
}
