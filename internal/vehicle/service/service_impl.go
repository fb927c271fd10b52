package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/drivia/drivia/internal/vehicle/domain"
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
		log:   p.Log.Named("vehicle.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVehicleRequest) (domain.Vehicle, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Vehicle{}, domain.ErrInvalidOrganization
	}

	make := strings.TrimSpace(req.Make)
	model := strings.TrimSpace(req.Model)
	if make == "" || model == "" {
		return domain.Vehicle{}, domain.ErrInvalidVehicle
	}

	plate := normalizePlate(req.Plate)
	if plate == "" {
		return domain.Vehicle{}, domain.ErrInvalidPlate
	}
	existing, err := s.repo.FindByPlate(ctx, s.db, orgID, plate)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if existing != nil {
		return domain.Vehicle{}, domain.ErrDuplicatePlate
	}

	transmission := strings.ToLower(strings.TrimSpace(req.Transmission))
	if transmission != domain.TransmissionAutomatic {
		transmission = domain.TransmissionManual
	}

	now := time.Now().UTC()
	vehicle := domain.Vehicle{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		Make:         make,
		Model:        model,
		Plate:        plate,
		Year:         req.Year,
		Transmission: transmission,
		Status:       domain.StatusAvailable,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &vehicle); err != nil {
		return domain.Vehicle{}, err
	}

	return vehicle, nil
}

func (s *Service) List(ctx context.Context, req domain.ListVehicleRequest) (domain.ListVehicleResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListVehicleResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListVehicleFilter{
		Status:       strings.TrimSpace(req.Status),
		Transmission: strings.ToLower(strings.TrimSpace(req.Transmission)),
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
		return domain.ListVehicleResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(vehicle *domain.Vehicle) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        vehicle.ID.String(),
			CreatedAt: vehicle.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	vehicles := make([]domain.Vehicle, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		vehicles = append(vehicles, *item)
	}

	resp := domain.ListVehicleResponse{Vehicles: vehicles}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetVehicleRequest) (domain.Vehicle, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Vehicle{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Vehicle{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if item == nil {
		return domain.Vehicle{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateVehicleRequest) (domain.Vehicle, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Vehicle{}, domain.ErrInvalidOrganization
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Vehicle{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if item == nil {
		return domain.Vehicle{}, domain.ErrNotFound
	}

	if req.Make != nil {
		item.Make = strings.TrimSpace(*req.Make)
	}
	if req.Model != nil {
		item.Model = strings.TrimSpace(*req.Model)
	}
	if item.Make == "" || item.Model == "" {
		return domain.Vehicle{}, domain.ErrInvalidVehicle
	}
	if req.Plate != nil {
		plate := normalizePlate(*req.Plate)
		if plate == "" {
			return domain.Vehicle{}, domain.ErrInvalidPlate
		}
		if plate != item.Plate {
			existing, err := s.repo.FindByPlate(ctx, s.db, orgID, plate)
			if err != nil {
				return domain.Vehicle{}, err
			}
			if existing != nil {
				return domain.Vehicle{}, domain.ErrDuplicatePlate
			}
		}
		item.Plate = plate
	}
	if req.Year != nil {
		item.Year = *req.Year
	}
	if req.Transmission != nil {
		transmission := strings.ToLower(strings.TrimSpace(*req.Transmission))
		if transmission != domain.TransmissionAutomatic {
			transmission = domain.TransmissionManual
		}
		item.Transmission = transmission
	}
	if req.Status != nil {
		item.Status = strings.TrimSpace(*req.Status)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Vehicle{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetVehicleRequest) error {
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

// normalizePlate uppercases the plate and strips spaces and dashes so
// "ab-123-cd" and "AB 123 CD" collide on the unique index.
func normalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return plate
}
