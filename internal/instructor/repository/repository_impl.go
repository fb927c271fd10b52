package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/instructor/domain"
	"github.com/drivia/drivia/pkg/db/option"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, instructor *domain.Instructor) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO instructors (id, org_id, given_name, family_name, email, phone, license_types, hired_at, status, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		instructor.ID,
		instructor.OrgID,
		instructor.GivenName,
		instructor.FamilyName,
		instructor.Email,
		instructor.Phone,
		instructor.LicenseTypes,
		instructor.HiredAt,
		instructor.Status,
		instructor.Metadata,
		instructor.CreatedAt,
		instructor.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, given_name, family_name, email, phone, license_types, hired_at, status, metadata, created_at, updated_at
		 FROM instructors WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&instructor).Error
	if err != nil {
		return nil, err
	}
	if instructor.ID == 0 {
		return nil, nil
	}
	return &instructor, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListInstructorFilter, page pagination.Pagination) ([]*domain.Instructor, error) {
	var instructors []*domain.Instructor
	stmt := db.WithContext(ctx).
		Model(&domain.Instructor{}).
		Where("org_id = ?", orgID)
	if filter.Name != "" {
		stmt = stmt.Where("given_name LIKE ? OR family_name LIKE ?", filter.Name+"%", filter.Name+"%")
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&instructors).Error
	if err != nil {
		return nil, err
	}
	return instructors, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, instructor *domain.Instructor) error {
	return db.WithContext(ctx).Exec(
		`UPDATE instructors
		 SET given_name = ?, family_name = ?, email = ?, phone = ?, license_types = ?, status = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		instructor.GivenName,
		instructor.FamilyName,
		instructor.Email,
		instructor.Phone,
		instructor.LicenseTypes,
		instructor.Status,
		instructor.UpdatedAt,
		instructor.OrgID,
		instructor.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM instructors WHERE org_id = ? AND id = ?`, orgID, id,
	).Error
}
