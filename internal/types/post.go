package types

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Content      string    `gorm:"not null;column:content" json:"content"`
	MediaURL     string    `gorm:"column:media_url" json:"media_url,omitempty"`
	LikeCount    int       `gorm:"not null;default:0;column:like_count" json:"like_count"`
	CommentCount int       `gorm:"not null;default:0;column:comment_count" json:"comment_count"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
