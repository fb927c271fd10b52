package server

import (
	"net/http"
	"strings"

	instructordomain "github.com/drivia/drivia/internal/instructor/domain"
	"github.com/drivia/drivia/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createInstructorRequest struct {
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LicenseTypes string `json:"license_types"`
	HiredAt      string `json:"hired_at"`
}

func (s *Server) CreateInstructor(c *gin.Context) {
	var req createInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	hiredAt, err := parseOptionalTime(req.HiredAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("hired_at", "invalid_hired_at", "invalid hired_at"))
		return
	}

	resp, err := s.instructorSvc.Create(c.Request.Context(), instructordomain.CreateInstructorRequest{
		GivenName:    strings.TrimSpace(req.GivenName),
		FamilyName:   strings.TrimSpace(req.FamilyName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		LicenseTypes: strings.TrimSpace(req.LicenseTypes),
		HiredAt:      hiredAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInstructors(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name   string `form:"name"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.instructorSvc.List(c.Request.Context(), instructordomain.ListInstructorRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Name:      strings.TrimSpace(query.Name),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInstructorByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.instructorSvc.GetByID(c.Request.Context(), instructordomain.GetInstructorRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInstructorRequest struct {
	GivenName    *string `json:"given_name"`
	FamilyName   *string `json:"family_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	LicenseTypes *string `json:"license_types"`
	Status       *string `json:"status"`
}

func (s *Server) UpdateInstructor(c *gin.Context) {
	var req updateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.instructorSvc.Update(c.Request.Context(), instructordomain.UpdateInstructorRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		GivenName:    req.GivenName,
		FamilyName:   req.FamilyName,
		Email:        req.Email,
		Phone:        req.Phone,
		LicenseTypes: req.LicenseTypes,
		Status:       req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInstructor(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.instructorSvc.Delete(c.Request.Context(), instructordomain.GetInstructorRequest{
		ID: id,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isInstructorValidationError(err error) bool {
	switch err {
	case instructordomain.ErrInvalidOrganization,
		instructordomain.ErrInvalidName,
		instructordomain.ErrInvalidEmail,
		instructordomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
