package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, lesson *Lesson) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Lesson, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListLessonFilter, page pagination.Pagination) ([]*Lesson, error)
	Update(ctx context.Context, db *gorm.DB, lesson *Lesson) error

	// FindOverlapping returns scheduled lessons intersecting
	// [start, end) that share the student, the instructor or the
	// vehicle. excludeID skips the lesson being rescheduled.
	FindOverlapping(ctx context.Context, db *gorm.DB, orgID snowflake.ID, probe OverlapProbe) ([]*Lesson, error)
}

type OverlapProbe struct {
	StudentID    snowflake.ID
	InstructorID snowflake.ID
	VehicleID    *snowflake.ID
	Start        time.Time
	End          time.Time
	ExcludeID    snowflake.ID
}
