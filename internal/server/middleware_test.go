package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/drivia/drivia/internal/auth/domain"
	"github.com/drivia/drivia/internal/auth/session"
	"github.com/drivia/drivia/internal/config"
	organizationdomain "github.com/drivia/drivia/internal/organization/domain"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/gin-gonic/gin"
)

type fakeAuthService struct {
	session *authdomain.Session
	err     error
}

func (f *fakeAuthService) CreateIdentity(ctx context.Context, req authdomain.CreateIdentityRequest) (*authdomain.User, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeAuthService) DeleteIdentity(ctx context.Context, id snowflake.ID) error {
	_ = ctx
	_ = id
	return nil
}

func (f *fakeAuthService) StoreTemporaryPassword(ctx context.Context, userID snowflake.ID, plaintext string) error {
	_ = ctx
	_ = userID
	_ = plaintext
	return nil
}

func (f *fakeAuthService) DeleteTemporaryPassword(ctx context.Context, userID snowflake.ID) error {
	_ = ctx
	_ = userID
	return nil
}

func (f *fakeAuthService) ConsumeTemporaryPassword(ctx context.Context, userID snowflake.ID) (string, error) {
	_ = ctx
	_ = userID
	return "", nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	_ = ctx
	_ = req
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	_ = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	_ = rawToken
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeOrganizationService struct {
	org *organizationdomain.Organization
	err error
}

func (f *fakeOrganizationService) Create(ctx context.Context, req organizationdomain.CreateOrganizationRequest) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = req
	return f.org, nil
}

func (f *fakeOrganizationService) GetByID(ctx context.Context, id snowflake.ID) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = id
	return f.org, f.err
}

func (f *fakeOrganizationService) GetByEmail(ctx context.Context, email string) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = email
	return f.org, f.err
}

func (f *fakeOrganizationService) GetByTaxID(ctx context.Context, taxID string) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = taxID
	return f.org, f.err
}

func (f *fakeOrganizationService) GetByUserID(ctx context.Context, userID snowflake.ID) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = userID
	return f.org, f.err
}

func (f *fakeOrganizationService) Delete(ctx context.Context, id snowflake.ID) error {
	_ = ctx
	_ = id
	return nil
}

func (f *fakeOrganizationService) AddAdmin(ctx context.Context, req organizationdomain.AddAdminRequest) (*organizationdomain.AdminUser, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeOrganizationService) ListAdmins(ctx context.Context, orgID snowflake.ID) ([]organizationdomain.AdminUser, error) {
	_ = ctx
	_ = orgID
	return nil, nil
}

func newProtectedRouter(authsvc authdomain.Service, orgsvc organizationdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		sessions:        session.NewManager(config.Config{}),
		authsvc:         authsvc,
		organizationSvc: orgsvc,
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/admin/ping", srv.AuthRequired(), srv.OrgContext(), func(c *gin.Context) {
		orgID, ok := orgcontext.OrgIDFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrInternal)
			return
		}
		c.JSON(http.StatusOK, gin.H{"org_id": orgID.String()})
	})
	return router
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{}, &fakeOrganizationService{})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRequiredRejectsExpiredSession(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{err: authdomain.ErrSessionExpired}, &fakeOrganizationService{})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "stale-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestOrgContextInjectsOrganization(t *testing.T) {
	authsvc := &fakeAuthService{session: &authdomain.Session{
		ID:     snowflake.ID(1),
		UserID: snowflake.ID(42),
	}}
	orgsvc := &fakeOrganizationService{org: &organizationdomain.Organization{
		ID:     snowflake.ID(7),
		UserID: snowflake.ID(42),
		Name:   "Auto-École du Centre",
	}}
	router := newProtectedRouter(authsvc, orgsvc)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "valid-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != `{"org_id":"7"}` {
		t.Fatalf("expected org id in response, got %s", got)
	}
}

func TestOrgContextRejectsUserWithoutOrganization(t *testing.T) {
	authsvc := &fakeAuthService{session: &authdomain.Session{
		ID:     snowflake.ID(1),
		UserID: snowflake.ID(42),
	}}
	orgsvc := &fakeOrganizationService{err: organizationdomain.ErrNotFound}
	router := newProtectedRouter(authsvc, orgsvc)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "valid-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}
