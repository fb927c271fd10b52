package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/organization/domain"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log,
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	taxID := strings.TrimSpace(req.TaxID)
	if taxID == "" {
		return nil, domain.ErrInvalidTaxID
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		ID:         s.genID.Generate(),
		UserID:     req.UserID,
		Name:       name,
		TaxID:      taxID,
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.log.Info("organization created",
		zap.String("org_id", org.ID.String()),
		zap.String("name", org.Name),
	)
	return org, nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*domain.Organization, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) GetByTaxID(ctx context.Context, taxID string) (*domain.Organization, error) {
	return s.repo.FindByTaxID(ctx, strings.TrimSpace(taxID))
}

func (s *service) GetByUserID(ctx context.Context, userID snowflake.ID) (*domain.Organization, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// Delete removes the organization together with its admin users. It is
// used by registration rollback, so a missing row is not an error.
func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	if err := s.repo.DeleteAdminsByOrg(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddAdmin(ctx context.Context, req domain.AddAdminRequest) (*domain.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	admin := &domain.AdminUser{
		ID:         s.genID.Generate(),
		OrgID:      req.OrgID,
		UserID:     req.UserID,
		GivenName:  strings.TrimSpace(req.GivenName),
		FamilyName: strings.TrimSpace(req.FamilyName),
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		Role:       domain.RoleAdmin,
		Status:     domain.StatusActive,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}

	s.log.Info("admin user created",
		zap.String("org_id", admin.OrgID.String()),
		zap.String("user_id", admin.UserID.String()),
	)
	return admin, nil
}

func (s *service) ListAdmins(ctx context.Context, orgID snowflake.ID) ([]domain.AdminUser, error) {
	return s.repo.ListAdmins(ctx, orgID)
}
