package server

import (
	"net/http"
	"strings"
	"time"

	lessondomain "github.com/drivia/drivia/internal/lesson/domain"
	"github.com/drivia/drivia/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createLessonRequest struct {
	StudentID    string    `json:"student_id"`
	InstructorID string    `json:"instructor_id"`
	VehicleID    string    `json:"vehicle_id"`
	Kind         string    `json:"kind"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Notes        string    `json:"notes"`
}

func (s *Server) CreateLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.lessonSvc.Create(c.Request.Context(), lessondomain.CreateLessonRequest{
		StudentID:    strings.TrimSpace(req.StudentID),
		InstructorID: strings.TrimSpace(req.InstructorID),
		VehicleID:    strings.TrimSpace(req.VehicleID),
		Kind:         strings.TrimSpace(req.Kind),
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLessons(c *gin.Context) {
	var query struct {
		pagination.Pagination
		StudentID    string `form:"student_id"`
		InstructorID string `form:"instructor_id"`
		Status       string `form:"status"`
		From         string `form:"from"`
		To           string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}

	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.lessonSvc.List(c.Request.Context(), lessondomain.ListLessonRequest{
		PageToken:    query.PageToken,
		PageSize:     int32(query.PageSize),
		StudentID:    strings.TrimSpace(query.StudentID),
		InstructorID: strings.TrimSpace(query.InstructorID),
		Status:       strings.TrimSpace(query.Status),
		From:         from,
		To:           to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLessonByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.lessonSvc.GetByID(c.Request.Context(), lessondomain.GetLessonRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateLessonRequest struct {
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Status   *string    `json:"status"`
	Notes    *string    `json:"notes"`
}

func (s *Server) UpdateLesson(c *gin.Context) {
	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.lessonSvc.Update(c.Request.Context(), lessondomain.UpdateLessonRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelLesson(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.lessonSvc.Cancel(c.Request.Context(), lessondomain.GetLessonRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isLessonValidationError(err error) bool {
	switch err {
	case lessondomain.ErrInvalidOrganization,
		lessondomain.ErrInvalidID,
		lessondomain.ErrInvalidTimeRange:
		return true
	default:
		return false
	}
}
