package server

import (
	"net/http"
	"strings"

	vehicledomain "github.com/drivia/drivia/internal/vehicle/domain"
	"github.com/drivia/drivia/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createVehicleRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Plate        string `json:"plate"`
	Year         int    `json:"year"`
	Transmission string `json:"transmission"`
}

func (s *Server) CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vehicleSvc.Create(c.Request.Context(), vehicledomain.CreateVehicleRequest{
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Plate:        strings.TrimSpace(req.Plate),
		Year:         req.Year,
		Transmission: strings.TrimSpace(req.Transmission),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListVehicles(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status       string `form:"status"`
		Transmission string `form:"transmission"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vehicleSvc.List(c.Request.Context(), vehicledomain.ListVehicleRequest{
		PageToken:    query.PageToken,
		PageSize:     int32(query.PageSize),
		Status:       strings.TrimSpace(query.Status),
		Transmission: strings.TrimSpace(query.Transmission),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetVehicleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.vehicleSvc.GetByID(c.Request.Context(), vehicledomain.GetVehicleRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateVehicleRequest struct {
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Plate        *string `json:"plate"`
	Year         *int    `json:"year"`
	Transmission *string `json:"transmission"`
	Status       *string `json:"status"`
}

func (s *Server) UpdateVehicle(c *gin.Context) {
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vehicleSvc.Update(c.Request.Context(), vehicledomain.UpdateVehicleRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Make:         req.Make,
		Model:        req.Model,
		Plate:        req.Plate,
		Year:         req.Year,
		Transmission: req.Transmission,
		Status:       req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteVehicle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.vehicleSvc.Delete(c.Request.Context(), vehicledomain.GetVehicleRequest{
		ID: id,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isVehicleValidationError(err error) bool {
	switch err {
	case vehicledomain.ErrInvalidOrganization,
		vehicledomain.ErrInvalidVehicle,
		vehicledomain.ErrInvalidPlate,
		vehicledomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
