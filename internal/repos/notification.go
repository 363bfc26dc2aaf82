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

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notification *types.Notification) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notification, error)
	ListByReceiver(ctx context.Context, tx *gorm.DB, receiverID uuid.UUID, req types.PageRequest) ([]*types.Notification, int64, error)
	CountUnread(ctx context.Context, tx *gorm.DB, receiverID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	MarkAllRead(ctx context.Context, tx *gorm.DB, receiverID uuid.UUID) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *types.Notification) error {
	return r.resolve(tx).WithContext(ctx).Create(notification).Error
}

func (r *notificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notification, error) {
	var notification types.Notification
	err := r.resolve(tx).WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("notification %s not found", id)
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) ListByReceiver(ctx context.Context, tx *gorm.DB, receiverID uuid.UUID, req types.PageRequest) ([]*types.Notification, int64, error) {
	base := r.resolve(tx).WithContext(ctx).
		Model(&types.Notification{}).
		Where("receiver_id = ?", receiverID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []*types.Notification
	err := base.Session(&gorm.Session{}).
		Preload("Sender").
		Order("created_at DESC").
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, receiverID uuid.UUID) (int64, error) {
	var count int64
	err := r.resolve(tx).WithContext(ctx).
		Model(&types.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification %s not found", id)
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, receiverID uuid.UUID) (int64, error) {
	res := r.resolve(tx).WithContext(ctx).
		Model(&types.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := r.resolve(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification %s not found", id)
	}
	return nil
}
