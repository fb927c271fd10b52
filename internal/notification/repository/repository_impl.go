package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/notification/domain"
	"github.com/drivia/drivia/pkg/db/option"
	"github.com/drivia/drivia/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO notifications (id, org_id, user_id, kind, title, body, read_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		notification.ID,
		notification.OrgID,
		notification.UserID,
		notification.Kind,
		notification.Title,
		notification.Body,
		notification.ReadAt,
		notification.CreatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, orgID, userID, id snowflake.ID) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, org_id, user_id, kind, title, body, read_at, created_at
		 FROM notifications WHERE org_id = ? AND user_id = ? AND id = ?`,
		orgID,
		userID,
		id,
	).Scan(&notification).Error
	if err != nil {
		return nil, err
	}
	if notification.ID == 0 {
		return nil, nil
	}
	return &notification, nil
}

func (r *repository) List(ctx context.Context, orgID, userID snowflake.ID, unreadOnly bool, page pagination.Pagination) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	stmt := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("org_id = ? AND user_id = ?", orgID, userID)
	if unreadOnly {
		stmt = stmt.Where("read_at IS NULL")
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, orgID, userID, id snowflake.ID, readAt time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE notifications SET read_at = ?
		 WHERE org_id = ? AND user_id = ? AND id = ? AND read_at IS NULL`,
		readAt,
		orgID,
		userID,
		id,
	).Error
}

func (r *repository) MarkAllRead(ctx context.Context, orgID, userID snowflake.ID, readAt time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE notifications SET read_at = ?
		 WHERE org_id = ? AND user_id = ? AND read_at IS NULL`,
		readAt,
		orgID,
		userID,
	).Error
}

func (r *repository) CountUnread(ctx context.Context, orgID, userID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM notifications
		 WHERE org_id = ? AND user_id = ? AND read_at IS NULL`,
		orgID,
		userID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
