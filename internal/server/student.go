package server

import (
	"net/http"
	"strings"

	studentdomain "github.com/drivia/drivia/internal/student/domain"
	"github.com/drivia/drivia/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createStudentRequest struct {
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BirthDate   string `json:"birth_date"`
	LicenseType string `json:"license_type"`
	CreditHours int    `json:"credit_hours"`
}

func (s *Server) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	birthDate, err := parseOptionalTime(req.BirthDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("birth_date", "invalid_birth_date", "invalid birth_date"))
		return
	}

	resp, err := s.studentSvc.Create(c.Request.Context(), studentdomain.CreateStudentRequest{
		GivenName:   strings.TrimSpace(req.GivenName),
		FamilyName:  strings.TrimSpace(req.FamilyName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		BirthDate:   birthDate,
		LicenseType: strings.TrimSpace(req.LicenseType),
		CreditHours: req.CreditHours,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStudents(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name        string `form:"name"`
		Email       string `form:"email"`
		LicenseType string `form:"license_type"`
		Status      string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.List(c.Request.Context(), studentdomain.ListStudentRequest{
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
		Name:        strings.TrimSpace(query.Name),
		Email:       strings.TrimSpace(query.Email),
		LicenseType: strings.TrimSpace(query.LicenseType),
		Status:      strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStudentByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.studentSvc.GetByID(c.Request.Context(), studentdomain.GetStudentRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStudentRequest struct {
	GivenName   *string `json:"given_name"`
	FamilyName  *string `json:"family_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	BirthDate   *string `json:"birth_date"`
	LicenseType *string `json:"license_type"`
	CreditHours *int    `json:"credit_hours"`
	Status      *string `json:"status"`
}

func (s *Server) UpdateStudent(c *gin.Context) {
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := studentdomain.UpdateStudentRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		GivenName:   req.GivenName,
		FamilyName:  req.FamilyName,
		Email:       req.Email,
		Phone:       req.Phone,
		LicenseType: req.LicenseType,
		CreditHours: req.CreditHours,
		Status:      req.Status,
	}

	if req.BirthDate != nil {
		birthDate, err := parseOptionalTime(*req.BirthDate, false)
		if err != nil {
			AbortWithError(c, newValidationError("birth_date", "invalid_birth_date", "invalid birth_date"))
			return
		}
		update.BirthDate = birthDate
	}

	resp, err := s.studentSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStudent(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.studentSvc.Delete(c.Request.Context(), studentdomain.GetStudentRequest{
		ID: id,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isStudentValidationError(err error) bool {
	switch err {
	case studentdomain.ErrInvalidOrganization,
		studentdomain.ErrInvalidName,
		studentdomain.ErrInvalidEmail,
		studentdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
