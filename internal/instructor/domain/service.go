package domain

import (
	"context"
	"errors"
	"time"

	"github.com/drivia/drivia/pkg/db/pagination"
)

type ListInstructorRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	Status    string
}

type ListInstructorFilter struct {
	Name   string
	Status string
}

type ListInstructorResponse struct {
	pagination.PageInfo
	Instructors []Instructor `json:"instructors"`
}

type CreateInstructorRequest struct {
	GivenName    string
	FamilyName   string
	Email        string
	Phone        string
	LicenseTypes string
	HiredAt      *time.Time
}

type UpdateInstructorRequest struct {
	ID           string
	GivenName    *string
	FamilyName   *string
	Email        *string
	Phone        *string
	LicenseTypes *string
	Status       *string
}

type GetInstructorRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateInstructorRequest) (Instructor, error)
	List(context.Context, ListInstructorRequest) (ListInstructorResponse, error)
	GetByID(context.Context, GetInstructorRequest) (Instructor, error)
	Update(context.Context, UpdateInstructorRequest) (Instructor, error)
	Delete(context.Context, GetInstructorRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("instructor_not_found")
)
