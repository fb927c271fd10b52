package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	KindLessonReminder = "lesson_reminder"
	KindPayment        = "payment"
	KindSystem         = "system"
)

type Notification struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"organization_id"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	Kind      string       `gorm:"not null;default:'system'" json:"kind"`
	Title     string       `gorm:"not null" json:"title"`
	Body      string       `gorm:"type:text" json:"body,omitempty"`
	ReadAt    *time.Time   `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
