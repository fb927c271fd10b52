package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/instructor/domain"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/drivia/drivia/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("instructor.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInstructorRequest) (domain.Instructor, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Instructor{}, domain.ErrInvalidOrganization
	}

	givenName := strings.TrimSpace(req.GivenName)
	familyName := strings.TrimSpace(req.FamilyName)
	if givenName == "" || familyName == "" {
		return domain.Instructor{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Instructor{}, domain.ErrInvalidEmail
	}

	licenseTypes := strings.ToUpper(strings.TrimSpace(req.LicenseTypes))
	if licenseTypes == "" {
		licenseTypes = "B"
	}

	now := time.Now().UTC()
	instructor := domain.Instructor{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		GivenName:    givenName,
		FamilyName:   familyName,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		LicenseTypes: licenseTypes,
		HiredAt:      req.HiredAt,
		Status:       domain.StatusActive,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &instructor); err != nil {
		return domain.Instructor{}, err
	}

	return instructor, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInstructorRequest) (domain.ListInstructorResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListInstructorResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListInstructorFilter{
		Name:   strings.TrimSpace(req.Name),
		Status: strings.TrimSpace(req.Status),
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListInstructorResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(instructor *domain.Instructor) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        instructor.ID.String(),
			CreatedAt: instructor.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	instructors := make([]domain.Instructor, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		instructors = append(instructors, *item)
	}

	resp := domain.ListInstructorResponse{Instructors: instructors}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInstructorRequest) (domain.Instructor, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Instructor{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Instructor{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Instructor{}, err
	}
	if item == nil {
		return domain.Instructor{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInstructorRequest) (domain.Instructor, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Instructor{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Instructor{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Instructor{}, err
	}
	if item == nil {
		return domain.Instructor{}, domain.ErrNotFound
	}

	if req.GivenName != nil {
		item.GivenName = strings.TrimSpace(*req.GivenName)
	}
	if req.FamilyName != nil {
		item.FamilyName = strings.TrimSpace(*req.FamilyName)
	}
	if item.GivenName == "" || item.FamilyName == "" {
		return domain.Instructor{}, domain.ErrInvalidName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.Instructor{}, domain.ErrInvalidEmail
		}
		item.Email = email
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LicenseTypes != nil {
		item.LicenseTypes = strings.ToUpper(strings.TrimSpace(*req.LicenseTypes))
	}
	if req.Status != nil {
		item.Status = strings.TrimSpace(*req.Status)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Instructor{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetInstructorRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, orgID, id)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
