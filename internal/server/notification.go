package server

import (
	"net/http"
	"strings"

	notificationdomain "github.com/drivia/drivia/internal/notification/domain"
	"github.com/drivia/drivia/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Pagination
		UnreadOnly string `form:"unread_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	unreadOnly, err := parseOptionalBool(query.UnreadOnly)
	if err != nil {
		AbortWithError(c, newValidationError("unread_only", "invalid_unread_only", "invalid unread_only"))
		return
	}

	resp, err := s.notificationSvc.List(c.Request.Context(), notificationdomain.ListNotificationRequest{
		UserID:     userID,
		UnreadOnly: unreadOnly != nil && *unreadOnly,
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UnreadNotificationCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	count, err := s.notificationSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unread": count}})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := s.notificationSvc.MarkRead(c.Request.Context(), userID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isNotificationValidationError(err error) bool {
	switch err {
	case notificationdomain.ErrInvalidOrganization,
		notificationdomain.ErrInvalidTitle,
		notificationdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
