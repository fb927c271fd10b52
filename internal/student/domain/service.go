package domain

import (
	"context"
	"errors"
	"time"

	"github.com/drivia/drivia/pkg/db/pagination"
)

type ListStudentRequest struct {
	PageToken   string
	PageSize    int32
	Name        string
	Email       string
	LicenseType string
	Status      string
}

type ListStudentFilter struct {
	Name        string
	Email       string
	LicenseType string
	Status      string
}

type ListStudentResponse struct {
	pagination.PageInfo
	Students []Student `json:"students"`
}

type CreateStudentRequest struct {
	GivenName   string
	FamilyName  string
	Email       string
	Phone       string
	BirthDate   *time.Time
	LicenseType string
	CreditHours int
}

type UpdateStudentRequest struct {
	ID          string
	GivenName   *string
	FamilyName  *string
	Email       *string
	Phone       *string
	BirthDate   *time.Time
	LicenseType *string
	CreditHours *int
	Status      *string
}

type GetStudentRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateStudentRequest) (Student, error)
	List(context.Context, ListStudentRequest) (ListStudentResponse, error)
	GetByID(context.Context, GetStudentRequest) (Student, error)
	Update(context.Context, UpdateStudentRequest) (Student, error)
	Delete(context.Context, GetStudentRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("student_not_found")
)
