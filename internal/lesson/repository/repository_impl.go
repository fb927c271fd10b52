package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/lesson/domain"
	"github.com/drivia/drivia/pkg/db/option"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, lesson *domain.Lesson) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO lessons (id, org_id, student_id, instructor_id, vehicle_id, kind, starts_at, ends_at, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lesson.ID,
		lesson.OrgID,
		lesson.StudentID,
		lesson.InstructorID,
		lesson.VehicleID,
		lesson.Kind,
		lesson.StartsAt,
		lesson.EndsAt,
		lesson.Status,
		lesson.Notes,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, student_id, instructor_id, vehicle_id, kind, starts_at, ends_at, status, notes, created_at, updated_at
		 FROM lessons WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&lesson).Error
	if err != nil {
		return nil, err
	}
	if lesson.ID == 0 {
		return nil, nil
	}
	return &lesson, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListLessonFilter, page pagination.Pagination) ([]*domain.Lesson, error) {
	var lessons []*domain.Lesson
	stmt := db.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("org_id = ?", orgID)
	if filter.StudentID != 0 {
		stmt = stmt.Where("student_id = ?", filter.StudentID)
	}
	if filter.InstructorID != 0 {
		stmt = stmt.Where("instructor_id = ?", filter.InstructorID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		stmt = stmt.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("starts_at <= ?", *filter.To)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, lesson *domain.Lesson) error {
	return db.WithContext(ctx).Exec(
		`UPDATE lessons
		 SET starts_at = ?, ends_at = ?, status = ?, notes = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		lesson.StartsAt,
		lesson.EndsAt,
		lesson.Status,
		lesson.Notes,
		lesson.UpdatedAt,
		lesson.OrgID,
		lesson.ID,
	).Error
}

func (r *repo) FindOverlapping(ctx context.Context, db *gorm.DB, orgID snowflake.ID, probe domain.OverlapProbe) ([]*domain.Lesson, error) {
	var lessons []*domain.Lesson
	stmt := db.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("org_id = ?", orgID).
		Where("status = ?", domain.StatusScheduled).
		Where("starts_at < ? AND ends_at > ?", probe.End, probe.Start)
	if probe.VehicleID != nil {
		stmt = stmt.Where(
			"student_id = ? OR instructor_id = ? OR vehicle_id = ?",
			probe.StudentID, probe.InstructorID, *probe.VehicleID,
		)
	} else {
		stmt = stmt.Where(
			"student_id = ? OR instructor_id = ?",
			probe.StudentID, probe.InstructorID,
		)
	}
	if probe.ExcludeID != 0 {
		stmt = stmt.Where("id <> ?", probe.ExcludeID)
	}
	err := stmt.Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}
