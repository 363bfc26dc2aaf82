package types

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationLike          NotificationType = "LIKE"
	NotificationComment       NotificationType = "COMMENT"
	NotificationFollow        NotificationType = "FOLLOW"
	NotificationEnrollment    NotificationType = "ENROLLMENT"
	NotificationSystemMessage NotificationType = "SYSTEM_MESSAGE"
)

// Related-entity type tags carried alongside a notification.
const (
	EntityPost         = "POST"
	EntityLearningPlan = "LEARNING_PLAN"
)

type Notification struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Type              NotificationType `gorm:"not null;column:type" json:"type"`
	SenderID          *uuid.UUID       `gorm:"type:uuid;index;column:sender_id" json:"sender_id,omitempty"`
	Sender            *User            `gorm:"constraint:OnDelete:SET NULL;foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	ReceiverID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Receiver          *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReceiverID;references:ID" json:"receiver,omitempty"`
	Message           string           `gorm:"not null;column:message" json:"message"`
	Read              bool             `gorm:"not null;default:false;column:is_read" json:"read"`
	RelatedEntityID   *uuid.UUID       `gorm:"type:uuid;column:related_entity_id" json:"related_entity_id,omitempty"`
	RelatedEntityType string           `gorm:"column:related_entity_type" json:"related_entity_type,omitempty"`
	CreatedAt         time.Time        `gorm:"not null;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
