package server

import (
	"net/http"

	organizationdomain "github.com/drivia/drivia/internal/organization/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetOrganization(c *gin.Context) {
	v, ok := c.Get(contextOrgKey)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	org, ok := v.(*organizationdomain.Organization)
	if !ok {
		AbortWithError(c, ErrInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": org})
}

func isOrganizationValidationError(err error) bool {
	switch err {
	case organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidEmail,
		organizationdomain.ErrInvalidTaxID:
		return true
	default:
		return false
	}
}
