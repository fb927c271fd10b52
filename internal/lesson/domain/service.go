package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/pkg/db/pagination"
)

type ListLessonRequest struct {
	PageToken    string
	PageSize     int32
	StudentID    string
	InstructorID string
	Status       string
	From         *time.Time
	To           *time.Time
}

type ListLessonFilter struct {
	StudentID    snowflake.ID
	InstructorID snowflake.ID
	Status       string
	From         *time.Time
	To           *time.Time
}

type ListLessonResponse struct {
	pagination.PageInfo
	Lessons []Lesson `json:"lessons"`
}

type CreateLessonRequest struct {
	StudentID    string
	InstructorID string
	VehicleID    string
	Kind         string
	StartsAt     time.Time
	EndsAt       time.Time
	Notes        string
}

type UpdateLessonRequest struct {
	ID       string
	StartsAt *time.Time
	EndsAt   *time.Time
	Status   *string
	Notes    *string
}

type GetLessonRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateLessonRequest) (Lesson, error)
	List(context.Context, ListLessonRequest) (ListLessonResponse, error)
	GetByID(context.Context, GetLessonRequest) (Lesson, error)
	Update(context.Context, UpdateLessonRequest) (Lesson, error)
	Cancel(context.Context, GetLessonRequest) (Lesson, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidTimeRange    = errors.New("invalid_time_range")
	ErrScheduleConflict    = errors.New("schedule_conflict")
	ErrNotFound            = errors.New("lesson_not_found")
)
