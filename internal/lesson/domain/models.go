package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusScheduled = "planifie"
	StatusCompleted = "termine"
	StatusCancelled = "annule"

	KindDriving = "conduite"
	KindTheory  = "code"
)

type Lesson struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID  `gorm:"not null;index" json:"organization_id"`
	StudentID    snowflake.ID  `gorm:"column:student_id;not null;index" json:"student_id"`
	InstructorID snowflake.ID  `gorm:"column:instructor_id;not null;index" json:"instructor_id"`
	VehicleID    *snowflake.ID `gorm:"column:vehicle_id;index" json:"vehicle_id,omitempty"`
	Kind         string        `gorm:"not null;default:'conduite'" json:"kind"`
	StartsAt     time.Time     `gorm:"column:starts_at;not null;index" json:"starts_at"`
	EndsAt       time.Time     `gorm:"column:ends_at;not null" json:"ends_at"`
	Status       string        `gorm:"not null" json:"status"`
	Notes        string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }

// Overlaps reports whether two half-open intervals [StartsAt, EndsAt)
// intersect.
func (l Lesson) Overlaps(start, end time.Time) bool {
	return l.StartsAt.Before(end) && start.Before(l.EndsAt)
}
