package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/pkg/db/pagination"
)

type CreateNotificationRequest struct {
	UserID snowflake.ID
	Kind   string
	Title  string
	Body   string
}

type ListNotificationRequest struct {
	UserID     snowflake.ID
	UnreadOnly bool
	PageToken  string
	PageSize   int32
}

type ListNotificationResponse struct {
	pagination.PageInfo
	Notifications []Notification `json:"notifications"`
}

type Service interface {
	Create(context.Context, CreateNotificationRequest) (Notification, error)
	List(context.Context, ListNotificationRequest) (ListNotificationResponse, error)
	MarkRead(ctx context.Context, userID snowflake.ID, id string) error
	MarkAllRead(ctx context.Context, userID snowflake.ID) error
	UnreadCount(ctx context.Context, userID snowflake.ID) (int64, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("notification_not_found")
)
