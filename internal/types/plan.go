package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityShared  Visibility = "SHARED"
)

// ParseVisibility maps a raw string to a Visibility or fails with a
// BadRequest error. Raw values arrive from clients, so an unknown value
// must never panic its way through a status update.
func ParseVisibility(raw string) (Visibility, error) {
	switch Visibility(strings.ToUpper(strings.TrimSpace(raw))) {
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityShared:
		return VisibilityShared, nil
	default:
		return "", apperrors.BadRequest("unknown visibility %q", raw)
	}
}

type LearningPlan struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string          `gorm:"not null;column:title" json:"title"`
	Description     string          `gorm:"column:description" json:"description"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Topics          []*PlanTopic    `gorm:"foreignKey:LearningPlanID;references:ID" json:"topics,omitempty"`
	StartDate       *datatypes.Date `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate         *datatypes.Date `gorm:"column:end_date" json:"end_date,omitempty"`
	Visibility      Visibility      `gorm:"not null;default:PRIVATE;column:visibility" json:"visibility"`
	EnrollmentCount int             `gorm:"not null;default:0;column:enrollment_count" json:"enrollment_count"`
	ViewCount       int             `gorm:"not null;default:0;column:view_count" json:"view_count"`
	Tags            string          `gorm:"column:tags" json:"tags"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

func (LearningPlan) TableName() string { return "learning_plans" }
