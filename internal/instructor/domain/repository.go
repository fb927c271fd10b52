package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, instructor *Instructor) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Instructor, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListInstructorFilter, page pagination.Pagination) ([]*Instructor, error)
	Update(ctx context.Context, db *gorm.DB, instructor *Instructor) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}
