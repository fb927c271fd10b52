package server

import (
	"net/http"

	registrationdomain "github.com/drivia/drivia/internal/registration/domain"
	"github.com/gin-gonic/gin"
)

type RegistrationFormRequest struct {
	Name            string `json:"name"`
	TaxID           string `json:"tax_id"`
	Address         string `json:"address"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ResponsibleName string `json:"responsible_name"`
}

func (r RegistrationFormRequest) toForm() registrationdomain.Form {
	return registrationdomain.Form{
		Name:            r.Name,
		TaxID:           r.TaxID,
		Address:         r.Address,
		City:            r.City,
		PostalCode:      r.PostalCode,
		Email:           r.Email,
		Phone:           r.Phone,
		ResponsibleName: r.ResponsibleName,
	}
}

type VerifyRegistrationRequest struct {
	Email string `json:"email"`
	TaxID string `json:"tax_id"`
}

type CompleteRegistrationRequest struct {
	SessionID string `json:"session_id"`
}

// RegistrationConfig exposes the publishable key the embedded payment
// element needs. The secret key never leaves the server.
func (s *Server) RegistrationConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publishable_key": s.cfg.Stripe.PublishableKey,
	})
}

func (s *Server) VerifyRegistration(c *gin.Context) {
	var req VerifyRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.registrationSvc.Verify(c.Request.Context(), registrationdomain.VerifyRequest{
		Email: req.Email,
		TaxID: req.TaxID,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) StartRegistrationCheckout(c *gin.Context) {
	var req RegistrationFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	redirect, err := s.registrationSvc.StartCheckout(c.Request.Context(), req.toForm())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, redirect)
}

// CreateRegistrationPaymentIntent accepts an optional form body: the
// embedded payment element opens the intent before the form is final,
// so an empty body is valid and skips the duplicate pre-check.
func (s *Server) CreateRegistrationPaymentIntent(c *gin.Context) {
	var req RegistrationFormRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	result, err := s.registrationSvc.CreatePaymentIntent(c.Request.Context(), req.toForm())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) CompleteRegistration(c *gin.Context) {
	var req CompleteRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.SessionID == "" {
		AbortWithError(c, newValidationError("session_id", "invalid_session_id", "session id is required"))
		return
	}

	creds, err := s.registrationSvc.Complete(c.Request.Context(), req.SessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, creds)
}
