package types

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentAbandoned EnrollmentStatus = "ABANDONED"
)

type PlanEnrollment struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	LearningPlanID     uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_enrollment_plan_user" json:"learning_plan_id"`
	LearningPlan       *LearningPlan    `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearningPlanID;references:ID" json:"learning_plan,omitempty"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_enrollment_plan_user" json:"user_id"`
	User               *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	EnrollmentDate     time.Time        `gorm:"not null;column:enrollment_date" json:"enrollment_date"`
	CompletedTopics    int              `gorm:"not null;default:0;column:completed_topics" json:"completed_topics"`
	TotalTopics        int              `gorm:"not null;default:0;column:total_topics" json:"total_topics"`
	ProgressPercentage int              `gorm:"not null;default:0;column:progress_percentage" json:"progress_percentage"`
	LastActivityDate   time.Time        `gorm:"column:last_activity_date" json:"last_activity_date"`
	Status             EnrollmentStatus `gorm:"not null;default:ACTIVE;column:status" json:"status"`
	CreatedAt          time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"not null" json:"updated_at"`
}

func (PlanEnrollment) TableName() string { return "plan_enrollments" }

// RecomputeProgress derives the percentage from the completed count and
// the topic snapshot taken at enroll time. TotalTopics is never
// re-read from the plan, so progress stays meaningful even after the
// owner reshapes the topic list. Rounding is half-up: 1 of 3 is 33.
func (e *PlanEnrollment) RecomputeProgress(now time.Time) {
	if e.TotalTopics > 0 {
		e.ProgressPercentage = int(math.Round(float64(e.CompletedTopics) * 100.0 / float64(e.TotalTopics)))
	} else {
		e.ProgressPercentage = 0
	}
	e.LastActivityDate = now
}
