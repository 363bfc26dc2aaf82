package types

import (
	"time"

	"github.com/google/uuid"
)

// PostLike pins down at most one like per (post, user) with a composite
// unique index, the same shape the enrollment table uses for its
// (plan, user) constraint.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_like_post_user" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_like_post_user" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }
