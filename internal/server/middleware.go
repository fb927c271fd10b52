package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/drivia/drivia/internal/orgcontext"
)

const (
	contextUserIDKey = "user_id"
	contextOrgKey    = "organization"
)

// AuthRequired resolves the session cookie into an authenticated user.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID)
		c.Next()
	}
}

// OrgContext loads the driving school owned by the authenticated user and
// injects its ID into the request context. Must run after AuthRequired.
func (s *Server) OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		org, err := s.organizationSvc.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, ErrForbidden)
			return
		}

		c.Set(contextOrgKey, org)
		c.Request = c.Request.WithContext(orgcontext.WithOrgID(c.Request.Context(), org.ID))
		c.Next()
	}
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	v, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(snowflake.ID)
	return id, ok
}
