package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	GetByEmail(ctx context.Context, email string) (*Organization, error)
	GetByTaxID(ctx context.Context, taxID string) (*Organization, error)
	GetByUserID(ctx context.Context, userID snowflake.ID) (*Organization, error)
	Delete(ctx context.Context, id snowflake.ID) error

	AddAdmin(ctx context.Context, req AddAdminRequest) (*AdminUser, error)
	ListAdmins(ctx context.Context, orgID snowflake.ID) ([]AdminUser, error)
}

type CreateOrganizationRequest struct {
	UserID     snowflake.ID
	Name       string
	TaxID      string
	Address    string
	City       string
	PostalCode string
	Email      string
	Phone      string
}

type AddAdminRequest struct {
	OrgID      snowflake.ID
	UserID     snowflake.ID
	GivenName  string
	FamilyName string
	Email      string
	Phone      string
}

var (
	ErrNotFound     = errors.New("organization not found")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidTaxID = errors.New("invalid_tax_id")
)
