package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/lesson/domain"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/drivia/drivia/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("lesson.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLessonRequest) (domain.Lesson, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Lesson{}, domain.ErrInvalidOrganization
	}

	studentID, err := s.parseID(req.StudentID)
	if err != nil {
		return domain.Lesson{}, err
	}
	instructorID, err := s.parseID(req.InstructorID)
	if err != nil {
		return domain.Lesson{}, err
	}
	var vehicleID *snowflake.ID
	if strings.TrimSpace(req.VehicleID) != "" {
		id, err := s.parseID(req.VehicleID)
		if err != nil {
			return domain.Lesson{}, err
		}
		vehicleID = &id
	}

	if !req.EndsAt.After(req.StartsAt) {
		return domain.Lesson{}, domain.ErrInvalidTimeRange
	}

	conflicts, err := s.repo.FindOverlapping(ctx, s.db, orgID, domain.OverlapProbe{
		StudentID:    studentID,
		InstructorID: instructorID,
		VehicleID:    vehicleID,
		Start:        req.StartsAt,
		End:          req.EndsAt,
	})
	if err != nil {
		return domain.Lesson{}, err
	}
	if len(conflicts) > 0 {
		return domain.Lesson{}, domain.ErrScheduleConflict
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind != domain.KindTheory {
		kind = domain.KindDriving
	}

	now := time.Now().UTC()
	lesson := domain.Lesson{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		StudentID:    studentID,
		InstructorID: instructorID,
		VehicleID:    vehicleID,
		Kind:         kind,
		StartsAt:     req.StartsAt.UTC(),
		EndsAt:       req.EndsAt.UTC(),
		Status:       domain.StatusScheduled,
		Notes:        strings.TrimSpace(req.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &lesson); err != nil {
		return domain.Lesson{}, err
	}

	return lesson, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLessonRequest) (domain.ListLessonResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListLessonResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListLessonFilter{
		Status: strings.TrimSpace(req.Status),
		From:   req.From,
		To:     req.To,
	}
	if strings.TrimSpace(req.StudentID) != "" {
		id, err := s.parseID(req.StudentID)
		if err != nil {
			return domain.ListLessonResponse{}, err
		}
		filter.StudentID = id
	}
	if strings.TrimSpace(req.InstructorID) != "" {
		id, err := s.parseID(req.InstructorID)
		if err != nil {
			return domain.ListLessonResponse{}, err
		}
		filter.InstructorID = id
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
		return domain.ListLessonResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(lesson *domain.Lesson) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        lesson.ID.String(),
			CreatedAt: lesson.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	lessons := make([]domain.Lesson, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		lessons = append(lessons, *item)
	}

	resp := domain.ListLessonResponse{Lessons: lessons}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetLessonRequest) (domain.Lesson, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Lesson{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Lesson{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Lesson{}, err
	}
	if item == nil {
		return domain.Lesson{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateLessonRequest) (domain.Lesson, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Lesson{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Lesson{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Lesson{}, err
	}
	if item == nil {
		return domain.Lesson{}, domain.ErrNotFound
	}

	if req.StartsAt != nil {
		item.StartsAt = req.StartsAt.UTC()
	}
	if req.EndsAt != nil {
		item.EndsAt = req.EndsAt.UTC()
	}
	if !item.EndsAt.After(item.StartsAt) {
		return domain.Lesson{}, domain.ErrInvalidTimeRange
	}

	// Rescheduling re-runs the conflict check against everyone else.
	if req.StartsAt != nil || req.EndsAt != nil {
		conflicts, err := s.repo.FindOverlapping(ctx, s.db, orgID, domain.OverlapProbe{
			StudentID:    item.StudentID,
			InstructorID: item.InstructorID,
			VehicleID:    item.VehicleID,
			Start:        item.StartsAt,
			End:          item.EndsAt,
			ExcludeID:    item.ID,
		})
		if err != nil {
			return domain.Lesson{}, err
		}
		if len(conflicts) > 0 {
			return domain.Lesson{}, domain.ErrScheduleConflict
		}
	}

	if req.Status != nil {
		item.Status = strings.TrimSpace(*req.Status)
	}
	if req.Notes != nil {
		item.Notes = strings.TrimSpace(*req.Notes)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Lesson{}, err
	}

	return *item, nil
}

func (s *Service) Cancel(ctx context.Context, req domain.GetLessonRequest) (domain.Lesson, error) {
	status := domain.StatusCancelled
	return s.Update(ctx, domain.UpdateLessonRequest{
		ID:     req.ID,
		Status: &status,
	})
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
