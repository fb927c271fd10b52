package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/notification/domain"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/drivia/drivia/pkg/db/pagination"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("notification.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateNotificationRequest) (domain.Notification, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Notification{}, domain.ErrInvalidOrganization
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Notification{}, domain.ErrInvalidTitle
	}

	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		kind = domain.KindSystem
	}

	notification := domain.Notification{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		UserID:    req.UserID,
		Kind:      kind,
		Title:     title,
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, &notification); err != nil {
		return domain.Notification{}, err
	}

	return notification, nil
}

func (s *service) List(ctx context.Context, req domain.ListNotificationRequest) (domain.ListNotificationResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListNotificationResponse{}, domain.ErrInvalidOrganization
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, orgID, req.UserID, req.UnreadOnly, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListNotificationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(notification *domain.Notification) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        notification.ID.String(),
			CreatedAt: notification.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	notifications := make([]domain.Notification, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		notifications = append(notifications, *item)
	}

	resp := domain.ListNotificationResponse{Notifications: notifications}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID snowflake.ID, id string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	parsedID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsedID == 0 {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, orgID, userID, parsedID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.MarkRead(ctx, orgID, userID, parsedID, time.Now().UTC())
}

func (s *service) MarkAllRead(ctx context.Context, userID snowflake.ID) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}
	return s.repo.MarkAllRead(ctx, orgID, userID, time.Now().UTC())
}

func (s *service) UnreadCount(ctx context.Context, userID snowflake.ID) (int64, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return 0, domain.ErrInvalidOrganization
	}
	return s.repo.CountUnread(ctx, orgID, userID)
}
