package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vehicle *Vehicle) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Vehicle, error)
	FindByPlate(ctx context.Context, db *gorm.DB, orgID snowflake.ID, plate string) (*Vehicle, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListVehicleFilter, page pagination.Pagination) ([]*Vehicle, error)
	Update(ctx context.Context, db *gorm.DB, vehicle *Vehicle) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}
