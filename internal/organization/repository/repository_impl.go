package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/organization/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO organizations (id, user_id, name, tax_id, address, city, postal_code, email, phone, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		org.ID,
		org.UserID,
		org.Name,
		org.TaxID,
		org.Address,
		org.City,
		org.PostalCode,
		org.Email,
		org.Phone,
		org.Status,
		org.CreatedAt,
		org.UpdatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*domain.Organization, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *repository) FindByTaxID(ctx context.Context, taxID string) (*domain.Organization, error) {
	return r.findOne(ctx, "tax_id = ?", taxID)
}

func (r *repository) FindByUserID(ctx context.Context, userID snowflake.ID) (*domain.Organization, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *repository) findOne(ctx context.Context, query string, arg any) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM organizations WHERE id = ?`, id,
	).Error
}

func (r *repository) CreateAdmin(ctx context.Context, admin *domain.AdminUser) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO admin_users (id, org_id, user_id, given_name, family_name, email, phone, role, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		admin.ID,
		admin.OrgID,
		admin.UserID,
		admin.GivenName,
		admin.FamilyName,
		admin.Email,
		admin.Phone,
		admin.Role,
		admin.Status,
		admin.CreatedAt,
	).Error
}

func (r *repository) ListAdmins(ctx context.Context, orgID snowflake.ID) ([]domain.AdminUser, error) {
	var admins []domain.AdminUser
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, org_id, user_id, given_name, family_name, email, phone, role, status, created_at
		 FROM admin_users
		 WHERE org_id = ?
		 ORDER BY created_at ASC`,
		orgID,
	).Scan(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *repository) DeleteAdminsByOrg(ctx context.Context, orgID snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM admin_users WHERE org_id = ?`, orgID,
	).Error
}
