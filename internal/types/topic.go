package types

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
)

type TopicStatus string

const (
	TopicNotStarted TopicStatus = "NOT_STARTED"
	TopicInProgress TopicStatus = "IN_PROGRESS"
	TopicCompleted  TopicStatus = "COMPLETED"
)

// ParseTopicStatus maps a raw string to a TopicStatus or fails with a
// BadRequest error. There is no state machine on topics: any status is
// reachable from any other, including COMPLETED back to NOT_STARTED.
func ParseTopicStatus(raw string) (TopicStatus, error) {
	switch TopicStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case TopicNotStarted:
		return TopicNotStarted, nil
	case TopicInProgress:
		return TopicInProgress, nil
	case TopicCompleted:
		return TopicCompleted, nil
	default:
		return "", apperrors.BadRequest("unknown topic status %q", raw)
	}
}

type PlanTopic struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string        `gorm:"not null;column:title" json:"title"`
	MaterialLink   string        `gorm:"column:material_link" json:"material_link"`
	Status         TopicStatus   `gorm:"not null;default:NOT_STARTED;column:status" json:"status"`
	Notes          string        `gorm:"column:notes" json:"notes"`
	LearningPlanID uuid.UUID     `gorm:"type:uuid;not null;index" json:"learning_plan_id"`
	LearningPlan   *LearningPlan `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearningPlanID;references:ID" json:"-"`
	OrderIndex     int           `gorm:"not null;default:0;column:order_index" json:"order_index"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

func (PlanTopic) TableName() string { return "plan_topics" }
