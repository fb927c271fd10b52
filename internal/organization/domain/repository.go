package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	FindByEmail(ctx context.Context, email string) (*Organization, error)
	FindByTaxID(ctx context.Context, taxID string) (*Organization, error)
	FindByUserID(ctx context.Context, userID snowflake.ID) (*Organization, error)
	Delete(ctx context.Context, id snowflake.ID) error

	CreateAdmin(ctx context.Context, admin *AdminUser) error
	ListAdmins(ctx context.Context, orgID snowflake.ID) ([]AdminUser, error)
	DeleteAdminsByOrg(ctx context.Context, orgID snowflake.ID) error
}
