package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drivia/drivia/internal/config"
	paymentdomain "github.com/drivia/drivia/internal/payment/domain"
	registrationdomain "github.com/drivia/drivia/internal/registration/domain"
	"github.com/gin-gonic/gin"
)

type fakeRegistrationService struct {
	verifyCalls   int
	checkoutCalls int
	intentCalls   int
	completeCalls int

	lastSessionID string
	lastForm      registrationdomain.Form

	verifyErr   error
	checkoutErr error
	completeErr error
}

func (f *fakeRegistrationService) Verify(ctx context.Context, req registrationdomain.VerifyRequest) error {
	f.verifyCalls++
	_ = ctx
	_ = req
	return f.verifyErr
}

func (f *fakeRegistrationService) StartCheckout(ctx context.Context, form registrationdomain.Form) (*registrationdomain.CheckoutRedirect, error) {
	f.checkoutCalls++
	f.lastForm = form
	_ = ctx
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return &registrationdomain.CheckoutRedirect{
		SessionID: "cs_test_123",
		URL:       "https://checkout.example.com/cs_test_123",
	}, nil
}

func (f *fakeRegistrationService) CreatePaymentIntent(ctx context.Context, form registrationdomain.Form) (*registrationdomain.PaymentIntentResult, error) {
	f.intentCalls++
	f.lastForm = form
	_ = ctx
	return &registrationdomain.PaymentIntentResult{ClientSecret: "pi_secret_123"}, nil
}

func (f *fakeRegistrationService) Complete(ctx context.Context, sessionID string) (*registrationdomain.Credentials, error) {
	f.completeCalls++
	f.lastSessionID = sessionID
	_ = ctx
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &registrationdomain.Credentials{
		Email:    "owner@example.com",
		Password: "generated-pass",
	}, nil
}

func newRegistrationRouter(svc registrationdomain.Service, cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:             cfg,
		registrationSvc: svc,
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/registration/config", srv.RegistrationConfig)
	router.POST("/api/registration/verify", srv.VerifyRegistration)
	router.POST("/api/registration/checkout-session", srv.StartRegistrationCheckout)
	router.POST("/api/registration/payment-intent", srv.CreateRegistrationPaymentIntent)
	router.POST("/api/registration/complete", srv.CompleteRegistration)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegistrationConfigReturnsPublishableKey(t *testing.T) {
	router := newRegistrationRouter(&fakeRegistrationService{}, config.Config{
		Stripe: config.StripeConfig{PublishableKey: "pk_test_abc"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/registration/config", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["publishable_key"] != "pk_test_abc" {
		t.Fatalf("expected publishable key in response, got %q", body["publishable_key"])
	}
}

func TestVerifyRegistrationAvailable(t *testing.T) {
	svc := &fakeRegistrationService{}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/verify", `{"email":"new@example.com","tax_id":"12345678900011"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.verifyCalls != 1 {
		t.Fatalf("expected one verify call, got %d", svc.verifyCalls)
	}
}

func TestVerifyRegistrationDuplicateEmailReturns409(t *testing.T) {
	svc := &fakeRegistrationService{verifyErr: registrationdomain.ErrDuplicateEmail}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/verify", `{"email":"taken@example.com","tax_id":"12345678900011"}`)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Error.Message != "email_already_registered" {
		t.Fatalf("expected duplicate email message, got %q", body.Error.Message)
	}
}

func TestStartRegistrationCheckoutReturnsRedirect(t *testing.T) {
	svc := &fakeRegistrationService{}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/checkout-session", `{
		"name":"Auto-École du Centre",
		"tax_id":"12345678900011",
		"email":"contact@auto-ecole.fr",
		"responsible_name":"Marie Dupont"
	}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.checkoutCalls != 1 {
		t.Fatalf("expected one checkout call, got %d", svc.checkoutCalls)
	}
	if svc.lastForm.Name != "Auto-École du Centre" {
		t.Fatalf("expected form name to be forwarded, got %q", svc.lastForm.Name)
	}

	var body registrationdomain.CheckoutRedirect
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.URL != "https://checkout.example.com/cs_test_123" {
		t.Fatalf("expected redirect url, got %q", body.URL)
	}
}

func TestCreateRegistrationPaymentIntentReturnsClientSecret(t *testing.T) {
	svc := &fakeRegistrationService{}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/payment-intent", `{
		"name":"Auto-École du Centre",
		"tax_id":"12345678900011",
		"email":"contact@auto-ecole.fr",
		"responsible_name":"Marie Dupont"
	}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body registrationdomain.PaymentIntentResult
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.ClientSecret != "pi_secret_123" {
		t.Fatalf("expected client secret, got %q", body.ClientSecret)
	}
}

func TestCreateRegistrationPaymentIntentAcceptsEmptyBody(t *testing.T) {
	svc := &fakeRegistrationService{}
	router := newRegistrationRouter(svc, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/registration/payment-intent", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.intentCalls != 1 {
		t.Fatalf("expected one intent call, got %d", svc.intentCalls)
	}
	if svc.lastForm != (registrationdomain.Form{}) {
		t.Fatalf("expected an empty form, got %+v", svc.lastForm)
	}

	var body registrationdomain.PaymentIntentResult
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.ClientSecret != "pi_secret_123" {
		t.Fatalf("expected client secret, got %q", body.ClientSecret)
	}
}

func TestStartRegistrationCheckoutProviderDownReturns503(t *testing.T) {
	svc := &fakeRegistrationService{
		checkoutErr: fmt.Errorf("%w: connection refused", paymentdomain.ErrProvider),
	}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/checkout-session", `{
		"name":"Auto-École du Centre",
		"tax_id":"12345678900011",
		"email":"contact@auto-ecole.fr",
		"responsible_name":"Marie Dupont"
	}`)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Error.Type != "service_unavailable" {
		t.Fatalf("expected service_unavailable, got %q", body.Error.Type)
	}
}

func TestCompleteRegistrationReturnsCredentials(t *testing.T) {
	svc := &fakeRegistrationService{}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/complete", `{"session_id":"cs_test_123"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.lastSessionID != "cs_test_123" {
		t.Fatalf("expected session id to be forwarded, got %q", svc.lastSessionID)
	}

	var body registrationdomain.Credentials
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Email != "owner@example.com" || body.Password != "generated-pass" {
		t.Fatalf("expected credentials in response, got %+v", body)
	}
}

func TestCompleteRegistrationMissingSessionIDReturns400(t *testing.T) {
	svc := &fakeRegistrationService{}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/complete", `{}`)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.completeCalls != 0 {
		t.Fatal("expected complete not to be called without a session id")
	}
}

func TestCompleteRegistrationUnpaidReturns400(t *testing.T) {
	svc := &fakeRegistrationService{completeErr: registrationdomain.ErrPaymentNotCompleted}
	router := newRegistrationRouter(svc, config.Config{})

	resp := postJSON(t, router, "/api/registration/complete", `{"session_id":"cs_test_123"}`)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Error.Errors) != 1 || body.Error.Errors[0].Code != "payment_not_completed" {
		t.Fatalf("expected payment_not_completed validation error, got %+v", body.Error)
	}
}
