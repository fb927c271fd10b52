package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/drivia/drivia/internal/student/domain"
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
		log:   p.Log.Named("student.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateStudentRequest) (domain.Student, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Student{}, domain.ErrInvalidOrganization
	}

	givenName := strings.TrimSpace(req.GivenName)
	familyName := strings.TrimSpace(req.FamilyName)
	if givenName == "" || familyName == "" {
		return domain.Student{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Student{}, domain.ErrInvalidEmail
	}

	licenseType := strings.ToUpper(strings.TrimSpace(req.LicenseType))
	if licenseType == "" {
		licenseType = "B"
	}

	now := time.Now().UTC()
	student := domain.Student{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		GivenName:   givenName,
		FamilyName:  familyName,
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		BirthDate:   req.BirthDate,
		LicenseType: licenseType,
		CreditHours: req.CreditHours,
		Status:      domain.StatusActive,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &student); err != nil {
		return domain.Student{}, err
	}

	return student, nil
}

func (s *Service) List(ctx context.Context, req domain.ListStudentRequest) (domain.ListStudentResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListStudentResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListStudentFilter{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		LicenseType: strings.ToUpper(strings.TrimSpace(req.LicenseType)),
		Status:      strings.TrimSpace(req.Status),
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
		return domain.ListStudentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(student *domain.Student) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        student.ID.String(),
			CreatedAt: student.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	students := make([]domain.Student, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		students = append(students, *item)
	}

	resp := domain.ListStudentResponse{Students: students}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetStudentRequest) (domain.Student, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Student{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Student{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Student{}, err
	}
	if item == nil {
		return domain.Student{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateStudentRequest) (domain.Student, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Student{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Student{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Student{}, err
	}
	if item == nil {
		return domain.Student{}, domain.ErrNotFound
	}

	if req.GivenName != nil {
		item.GivenName = strings.TrimSpace(*req.GivenName)
	}
	if req.FamilyName != nil {
		item.FamilyName = strings.TrimSpace(*req.FamilyName)
	}
	if item.GivenName == "" || item.FamilyName == "" {
		return domain.Student{}, domain.ErrInvalidName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.Student{}, domain.ErrInvalidEmail
		}
		item.Email = email
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.BirthDate != nil {
		item.BirthDate = req.BirthDate
	}
	if req.LicenseType != nil {
		item.LicenseType = strings.ToUpper(strings.TrimSpace(*req.LicenseType))
	}
	if req.CreditHours != nil {
		item.CreditHours = *req.CreditHours
	}
	if req.Status != nil {
		item.Status = strings.TrimSpace(*req.Status)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Student{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetStudentRequest) error {
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
