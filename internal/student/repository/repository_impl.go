package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/student/domain"
	"github.com/drivia/drivia/pkg/db/option"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, student *domain.Student) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO students (id, org_id, given_name, family_name, email, phone, birth_date, license_type, credit_hours, status, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		student.ID,
		student.OrgID,
		student.GivenName,
		student.FamilyName,
		student.Email,
		student.Phone,
		student.BirthDate,
		student.LicenseType,
		student.CreditHours,
		student.Status,
		student.Metadata,
		student.CreatedAt,
		student.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Student, error) {
	var student domain.Student
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, given_name, family_name, email, phone, birth_date, license_type, credit_hours, status, metadata, created_at, updated_at
		 FROM students WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&student).Error
	if err != nil {
		return nil, err
	}
	if student.ID == 0 {
		return nil, nil
	}
	return &student, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListStudentFilter, page pagination.Pagination) ([]*domain.Student, error) {
	var students []*domain.Student
	stmt := db.WithContext(ctx).
		Model(&domain.Student{}).
		Where("org_id = ?", orgID)
	if filter.Name != "" {
		stmt = stmt.Where("given_name LIKE ? OR family_name LIKE ?", filter.Name+"%", filter.Name+"%")
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if filter.LicenseType != "" {
		stmt = stmt.Where("license_type = ?", filter.LicenseType)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, student *domain.Student) error {
	return db.WithContext(ctx).Exec(
		`UPDATE students
		 SET given_name = ?, family_name = ?, email = ?, phone = ?, birth_date = ?, license_type = ?, credit_hours = ?, status = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		student.GivenName,
		student.FamilyName,
		student.Email,
		student.Phone,
		student.BirthDate,
		student.LicenseType,
		student.CreditHours,
		student.Status,
		student.UpdatedAt,
		student.OrgID,
		student.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM students WHERE org_id = ? AND id = ?`, orgID, id,
	).Error
}
