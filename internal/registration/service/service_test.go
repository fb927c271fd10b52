package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/drivia/drivia/internal/auth/domain"
	"github.com/drivia/drivia/internal/config"
	orgdomain "github.com/drivia/drivia/internal/organization/domain"
	"github.com/drivia/drivia/internal/password"
	paymentdomain "github.com/drivia/drivia/internal/payment/domain"
	"github.com/drivia/drivia/internal/registration/domain"
	"go.uber.org/zap"
)

type fakePayments struct {
	sessions map[string]*paymentdomain.CheckoutSession
	created  []paymentdomain.CreateCheckoutSessionRequest
}

func newFakePayments() *fakePayments {
	return &fakePayments{sessions: map[string]*paymentdomain.CheckoutSession{}}
}

func (f *fakePayments) CreateCheckoutSession(ctx context.Context, req paymentdomain.CreateCheckoutSessionRequest) (*paymentdomain.CheckoutSession, error) {
	f.created = append(f.created, req)
	session := &paymentdomain.CheckoutSession{
		ID:            "cs_test_1",
		URL:           "https://checkout.example.com/cs_test_1",
		PaymentStatus: "unpaid",
		CustomerEmail: req.CustomerEmail,
		Metadata:      req.Metadata,
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakePayments) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*paymentdomain.CheckoutSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, paymentdomain.ErrProvider
	}
	return session, nil
}

func (f *fakePayments) CreatePaymentIntent(ctx context.Context, req paymentdomain.CreatePaymentIntentRequest) (*paymentdomain.PaymentIntent, error) {
	return &paymentdomain.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Status:       "requires_payment_method",
		Amount:       req.Amount,
		Currency:     req.Currency,
	}, nil
}

type fakeAuth struct {
	nextID snowflake.ID
	users  map[snowflake.ID]*authdomain.User
	temps  map[snowflake.ID]string

	failCreate bool
	failStore  bool

	trail *[]string
}

func newFakeAuth(trail *[]string) *fakeAuth {
	return &fakeAuth{
		nextID: 100,
		users:  map[snowflake.ID]*authdomain.User{},
		temps:  map[snowflake.ID]string{},
		trail:  trail,
	}
}

func (f *fakeAuth) CreateIdentity(ctx context.Context, req authdomain.CreateIdentityRequest) (*authdomain.User, error) {
	if f.failCreate {
		return nil, errors.New("identity store down")
	}
	f.nextID++
	hash := "$argon2id$fake"
	user := &authdomain.User{
		ID:             f.nextID,
		Email:          strings.ToLower(req.Email),
		PasswordHash:   &hash,
		EmailConfirmed: req.EmailConfirmed,
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAuth) DeleteIdentity(ctx context.Context, id snowflake.ID) error {
	*f.trail = append(*f.trail, "delete identity")
	delete(f.users, id)
	return nil
}

func (f *fakeAuth) StoreTemporaryPassword(ctx context.Context, userID snowflake.ID, plaintext string) error {
	if f.failStore {
		return errors.New("temp password store down")
	}
	f.temps[userID] = plaintext
	return nil
}

func (f *fakeAuth) DeleteTemporaryPassword(ctx context.Context, userID snowflake.ID) error {
	*f.trail = append(*f.trail, "delete temp password")
	delete(f.temps, userID)
	return nil
}

func (f *fakeAuth) ConsumeTemporaryPassword(ctx context.Context, userID snowflake.ID) (string, error) {
	plaintext, ok := f.temps[userID]
	if !ok {
		return "", authdomain.ErrTempPasswordNotFound
	}
	delete(f.temps, userID)
	return plaintext, nil
}

func (f *fakeAuth) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuth) Logout(ctx context.Context, rawToken string) error { return nil }

func (f *fakeAuth) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	return nil, authdomain.ErrSessionNotFound
}

type fakeOrg struct {
	nextID snowflake.ID
	orgs   map[snowflake.ID]*orgdomain.Organization
	admins []orgdomain.AdminUser

	existingEmail string
	existingTaxID string

	failCreate   bool
	failAddAdmin bool
	failDelete   bool

	trail *[]string
}

func newFakeOrg(trail *[]string) *fakeOrg {
	return &fakeOrg{
		nextID: 200,
		orgs:   map[snowflake.ID]*orgdomain.Organization{},
		trail:  trail,
	}
}

func (f *fakeOrg) Create(ctx context.Context, req orgdomain.CreateOrganizationRequest) (*orgdomain.Organization, error) {
	if f.failCreate {
		return nil, errors.New("org store down")
	}
	f.nextID++
	org := &orgdomain.Organization{
		ID:     f.nextID,
		UserID: req.UserID,
		Name:   req.Name,
		TaxID:  req.TaxID,
		Email:  strings.ToLower(req.Email),
		Status: orgdomain.StatusActive,
	}
	f.orgs[org.ID] = org
	return org, nil
}

func (f *fakeOrg) GetByID(ctx context.Context, id snowflake.ID) (*orgdomain.Organization, error) {
	if org, ok := f.orgs[id]; ok {
		return org, nil
	}
	return nil, orgdomain.ErrNotFound
}

func (f *fakeOrg) GetByEmail(ctx context.Context, email string) (*orgdomain.Organization, error) {
	if f.existingEmail != "" && f.existingEmail == email {
		return &orgdomain.Organization{Email: email}, nil
	}
	return nil, orgdomain.ErrNotFound
}

func (f *fakeOrg) GetByTaxID(ctx context.Context, taxID string) (*orgdomain.Organization, error) {
	if f.existingTaxID != "" && f.existingTaxID == taxID {
		return &orgdomain.Organization{TaxID: taxID}, nil
	}
	return nil, orgdomain.ErrNotFound
}

func (f *fakeOrg) GetByUserID(ctx context.Context, userID snowflake.ID) (*orgdomain.Organization, error) {
	for _, org := range f.orgs {
		if org.UserID == userID {
			return org, nil
		}
	}
	return nil, orgdomain.ErrNotFound
}

func (f *fakeOrg) Delete(ctx context.Context, id snowflake.ID) error {
	*f.trail = append(*f.trail, "delete organization")
	if f.failDelete {
		return errors.New("org delete down")
	}
	delete(f.orgs, id)
	return nil
}

func (f *fakeOrg) AddAdmin(ctx context.Context, req orgdomain.AddAdminRequest) (*orgdomain.AdminUser, error) {
	if f.failAddAdmin {
		return nil, errors.New("admin store down")
	}
	admin := orgdomain.AdminUser{
		ID:         snowflake.ID(300),
		OrgID:      req.OrgID,
		UserID:     req.UserID,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Email:      req.Email,
		Role:       orgdomain.RoleAdmin,
		Status:     orgdomain.StatusActive,
	}
	f.admins = append(f.admins, admin)
	return &admin, nil
}

func (f *fakeOrg) ListAdmins(ctx context.Context, orgID snowflake.ID) ([]orgdomain.AdminUser, error) {
	return f.admins, nil
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, to[0])
	return nil
}

type testEnv struct {
	svc      domain.Service
	payments *fakePayments
	auth     *fakeAuth
	orgs     *fakeOrg
	mailer   *fakeMailer
	trail    *[]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	trail := &[]string{}
	payments := newFakePayments()
	auth := newFakeAuth(trail)
	orgs := newFakeOrg(trail)
	mailer := &fakeMailer{}

	cfg := config.Config{PublicBaseURL: "https://app.drivia.fr"}
	svc := New(zap.NewNop(), cfg, payments, auth, orgs, mailer)
	return &testEnv{svc: svc, payments: payments, auth: auth, orgs: orgs, mailer: mailer, trail: trail}
}

func testForm() domain.Form {
	return domain.Form{
		Name:            "Auto École du Centre",
		TaxID:           "12345678900012",
		Address:         "12 rue de la Paix",
		City:            "Lyon",
		PostalCode:      "69002",
		Email:           "contact@ecole-centre.fr",
		Phone:           "+33412345678",
		ResponsibleName: "Jean Dupont",
	}
}

func paidSession(env *testEnv, form domain.Form) string {
	session := &paymentdomain.CheckoutSession{
		ID:            "cs_paid",
		PaymentStatus: paymentdomain.PaymentStatusPaid,
		CustomerEmail: form.Email,
		Metadata:      form.Metadata(),
	}
	env.payments.sessions[session.ID] = session
	return session.ID
}

func TestVerifyChecksEmailBeforeTaxID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.existingEmail = "contact@ecole-centre.fr"
	env.orgs.existingTaxID = "12345678900012"

	err := env.svc.Verify(ctx, domain.VerifyRequest{
		Email: "contact@ecole-centre.fr",
		TaxID: "12345678900012",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail when both conflict, got %v", err)
	}

	env.orgs.existingEmail = ""
	err = env.svc.Verify(ctx, domain.VerifyRequest{
		Email: "contact@ecole-centre.fr",
		TaxID: "12345678900012",
	})
	if !errors.Is(err, domain.ErrDuplicateTaxID) {
		t.Fatalf("expected ErrDuplicateTaxID, got %v", err)
	}

	env.orgs.existingTaxID = ""
	if err := env.svc.Verify(ctx, domain.VerifyRequest{
		Email: "contact@ecole-centre.fr",
		TaxID: "12345678900012",
	}); err != nil {
		t.Fatalf("expected clean form to verify, got %v", err)
	}
}

func TestStartCheckoutCarriesFormMetadata(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	form := testForm()

	redirect, err := env.svc.StartCheckout(ctx, form)
	if err != nil {
		t.Fatalf("start checkout: %v", err)
	}
	if redirect.URL == "" || redirect.SessionID == "" {
		t.Fatalf("incomplete redirect %+v", redirect)
	}

	if len(env.payments.created) != 1 {
		t.Fatalf("expected one session, got %d", len(env.payments.created))
	}
	req := env.payments.created[0]
	if req.CustomerEmail != form.Email {
		t.Errorf("customer email = %q", req.CustomerEmail)
	}
	if req.Metadata["name"] != form.Name || req.Metadata["tax_id"] != form.TaxID {
		t.Errorf("metadata missing form fields: %v", req.Metadata)
	}
	if !strings.Contains(req.SuccessURL, "{CHECKOUT_SESSION_ID}") {
		t.Errorf("success url must carry the session placeholder, got %q", req.SuccessURL)
	}
}

func TestStartCheckoutRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.existingEmail = "contact@ecole-centre.fr"

	if _, err := env.svc.StartCheckout(ctx, testForm()); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(env.payments.created) != 0 {
		t.Fatal("no session may be opened for a duplicate registration")
	}
}

func TestCreatePaymentIntentWithoutFormSkipsDuplicateCheck(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.existingEmail = "contact@ecole-centre.fr"
	env.orgs.existingTaxID = "12345678900012"

	result, err := env.svc.CreatePaymentIntent(ctx, domain.Form{})
	if err != nil {
		t.Fatalf("intent without a form must not be pre-checked, got %v", err)
	}
	if result.ClientSecret != "pi_1_secret" {
		t.Fatalf("client secret = %q", result.ClientSecret)
	}
}

func TestCreatePaymentIntentRejectsDuplicateForm(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.existingEmail = "contact@ecole-centre.fr"

	if _, err := env.svc.CreatePaymentIntent(ctx, testForm()); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCompleteProvisionsAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	form := testForm()
	sessionID := paidSession(env, form)

	creds, err := env.svc.Complete(ctx, sessionID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if creds.Email != form.Email {
		t.Errorf("credentials email = %q, want %q", creds.Email, form.Email)
	}
	if len(creds.Password) != password.Length {
		t.Errorf("password length = %d, want %d", len(creds.Password), password.Length)
	}

	if len(env.auth.users) != 1 {
		t.Fatalf("expected one identity, got %d", len(env.auth.users))
	}
	for id, user := range env.auth.users {
		if !user.EmailConfirmed {
			t.Error("identity must be created with a confirmed email")
		}
		if env.auth.temps[id] != creds.Password {
			t.Error("temporary password must store the returned plaintext")
		}
	}

	if len(env.orgs.orgs) != 1 {
		t.Fatalf("expected one organization, got %d", len(env.orgs.orgs))
	}
	for _, org := range env.orgs.orgs {
		if org.Status != orgdomain.StatusActive {
			t.Errorf("organization status = %q", org.Status)
		}
		if org.TaxID != form.TaxID {
			t.Errorf("organization tax id = %q", org.TaxID)
		}
	}

	if len(env.orgs.admins) != 1 {
		t.Fatalf("expected one admin, got %d", len(env.orgs.admins))
	}
	admin := env.orgs.admins[0]
	if admin.GivenName != "Jean" || admin.FamilyName != "Dupont" {
		t.Errorf("admin name = %q %q", admin.GivenName, admin.FamilyName)
	}
	if admin.Role != orgdomain.RoleAdmin {
		t.Errorf("admin role = %q", admin.Role)
	}

	if len(env.mailer.sent) != 1 || env.mailer.sent[0] != form.Email {
		t.Errorf("welcome email recipients = %v", env.mailer.sent)
	}
}

func TestCompleteRejectsUnpaidSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	form := testForm()
	env.payments.sessions["cs_unpaid"] = &paymentdomain.CheckoutSession{
		ID:            "cs_unpaid",
		PaymentStatus: "unpaid",
		Metadata:      form.Metadata(),
	}

	_, err := env.svc.Complete(ctx, "cs_unpaid")
	if !errors.Is(err, domain.ErrPaymentNotCompleted) {
		t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
	}
	if len(env.auth.users) != 0 {
		t.Fatal("no identity may be created for an unpaid session")
	}
}

func TestCompleteRejectsMissingMetadata(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.payments.sessions["cs_empty"] = &paymentdomain.CheckoutSession{
		ID:            "cs_empty",
		PaymentStatus: paymentdomain.PaymentStatusPaid,
		Metadata:      map[string]string{"email": "contact@ecole-centre.fr"},
	}

	_, err := env.svc.Complete(ctx, "cs_empty")
	if !errors.Is(err, domain.ErrMissingFormData) {
		t.Fatalf("expected ErrMissingFormData, got %v", err)
	}
}

func TestCompleteRollsBackInReverseOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.failAddAdmin = true
	sessionID := paidSession(env, testForm())

	_, err := env.svc.Complete(ctx, sessionID)
	if !errors.Is(err, domain.ErrAdminUserCreationFailed) {
		t.Fatalf("expected ErrAdminUserCreationFailed, got %v", err)
	}

	want := []string{"delete organization", "delete temp password", "delete identity"}
	if len(*env.trail) != len(want) {
		t.Fatalf("rollback trail = %v, want %v", *env.trail, want)
	}
	for i, step := range want {
		if (*env.trail)[i] != step {
			t.Fatalf("rollback trail = %v, want %v", *env.trail, want)
		}
	}

	if len(env.auth.users) != 0 || len(env.auth.temps) != 0 || len(env.orgs.orgs) != 0 {
		t.Fatal("rollback must leave no partial records")
	}
}

func TestCompleteRollsBackOnOrganizationFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.failCreate = true
	sessionID := paidSession(env, testForm())

	_, err := env.svc.Complete(ctx, sessionID)
	if !errors.Is(err, domain.ErrOrganizationCreationFailed) {
		t.Fatalf("expected ErrOrganizationCreationFailed, got %v", err)
	}
	if len(env.auth.users) != 0 || len(env.auth.temps) != 0 {
		t.Fatal("identity and temporary password must be rolled back")
	}
}

func TestCompleteJoinsCompensationFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.orgs.failAddAdmin = true
	env.orgs.failDelete = true
	sessionID := paidSession(env, testForm())

	_, err := env.svc.Complete(ctx, sessionID)
	if !errors.Is(err, domain.ErrAdminUserCreationFailed) {
		t.Fatalf("expected causing error to survive, got %v", err)
	}
	if !strings.Contains(err.Error(), "org delete down") {
		t.Fatalf("expected compensation failure in error, got %v", err)
	}

	// The failed compensation must not stop the remaining ones.
	if len(env.auth.users) != 0 || len(env.auth.temps) != 0 {
		t.Fatal("remaining compensations must still run")
	}
}

func TestCompleteSucceedsWhenWelcomeEmailFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.mailer.fail = true
	sessionID := paidSession(env, testForm())

	if _, err := env.svc.Complete(ctx, sessionID); err != nil {
		t.Fatalf("mail failure must not fail registration: %v", err)
	}
}

func TestCompleteSingleWordResponsibleName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	form := testForm()
	form.ResponsibleName = "Madonna"
	sessionID := paidSession(env, form)

	if _, err := env.svc.Complete(ctx, sessionID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	admin := env.orgs.admins[0]
	if admin.GivenName != "Madonna" || admin.FamilyName != "Not specified" {
		t.Errorf("admin name = %q %q", admin.GivenName, admin.FamilyName)
	}
}
