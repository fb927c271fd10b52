package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, notification *Notification) error
	FindByID(ctx context.Context, orgID, userID, id snowflake.ID) (*Notification, error)
	List(ctx context.Context, orgID, userID snowflake.ID, unreadOnly bool, page pagination.Pagination) ([]*Notification, error)
	MarkRead(ctx context.Context, orgID, userID, id snowflake.ID, readAt time.Time) error
	MarkAllRead(ctx context.Context, orgID, userID snowflake.ID, readAt time.Time) error
	CountUnread(ctx context.Context, orgID, userID snowflake.ID) (int64, error)
}
