package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/vehicle/domain"
	"github.com/drivia/drivia/pkg/db/option"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, vehicle *domain.Vehicle) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO vehicles (id, org_id, make, model, plate, year, transmission, status, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vehicle.ID,
		vehicle.OrgID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Plate,
		vehicle.Year,
		vehicle.Transmission,
		vehicle.Status,
		vehicle.Metadata,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, make, model, plate, year, transmission, status, metadata, created_at, updated_at
		 FROM vehicles WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&vehicle).Error
	if err != nil {
		return nil, err
	}
	if vehicle.ID == 0 {
		return nil, nil
	}
	return &vehicle, nil
}

func (r *repo) FindByPlate(ctx context.Context, db *gorm.DB, orgID snowflake.ID, plate string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, make, model, plate, year, transmission, status, metadata, created_at, updated_at
		 FROM vehicles WHERE org_id = ? AND plate = ?`,
		orgID,
		plate,
	).Scan(&vehicle).Error
	if err != nil {
		return nil, err
	}
	if vehicle.ID == 0 {
		return nil, nil
	}
	return &vehicle, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListVehicleFilter, page pagination.Pagination) ([]*domain.Vehicle, error) {
	var vehicles []*domain.Vehicle
	stmt := db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("org_id = ?", orgID)
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Transmission != "" {
		stmt = stmt.Where("transmission = ?", filter.Transmission)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, vehicle *domain.Vehicle) error {
	return db.WithContext(ctx).Exec(
		`UPDATE vehicles
		 SET make = ?, model = ?, plate = ?, year = ?, transmission = ?, status = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		vehicle.Make,
		vehicle.Model,
		vehicle.Plate,
		vehicle.Year,
		vehicle.Transmission,
		vehicle.Status,
		vehicle.UpdatedAt,
		vehicle.OrgID,
		vehicle.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM vehicles WHERE org_id = ? AND id = ?`, orgID, id,
	).Error
}
