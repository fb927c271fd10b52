package service

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/drivia/drivia/internal/auth/domain"
	"github.com/drivia/drivia/internal/config"
	orgdomain "github.com/drivia/drivia/internal/organization/domain"
	"github.com/drivia/drivia/internal/password"
	paymentdomain "github.com/drivia/drivia/internal/payment/domain"
	"github.com/drivia/drivia/internal/providers/email"
	"github.com/drivia/drivia/internal/registration/domain"
	"go.uber.org/zap"
)

// Subscription price charged at registration, in minor units.
const (
	subscriptionAmount   = 14900
	subscriptionCurrency = "EUR"
)

type service struct {
	log      *zap.Logger
	payments paymentdomain.Provider
	authsvc  authdomain.Service
	orgsvc   orgdomain.Service
	mailer   email.Provider
	baseURL  string
}

func New(
	log *zap.Logger,
	cfg config.Config,
	payments paymentdomain.Provider,
	authsvc authdomain.Service,
	orgsvc orgdomain.Service,
	mailer email.Provider,
) domain.Service {
	return &service{
		log:      log,
		payments: payments,
		authsvc:  authsvc,
		orgsvc:   orgsvc,
		mailer:   mailer,
		baseURL:  cfg.PublicBaseURL,
	}
}

func (s *service) Verify(ctx context.Context, req domain.VerifyRequest) error {
	// Email first: the frontend surfaces one error at a time and the
	// email conflict is the one the owner can act on immediately.
	_, err := s.orgsvc.GetByEmail(ctx, req.Email)
	if err == nil {
		return domain.ErrDuplicateEmail
	}
	if !errors.Is(err, orgdomain.ErrNotFound) {
		return err
	}

	_, err = s.orgsvc.GetByTaxID(ctx, req.TaxID)
	if err == nil {
		return domain.ErrDuplicateTaxID
	}
	if !errors.Is(err, orgdomain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) StartCheckout(ctx context.Context, form domain.Form) (*domain.CheckoutRedirect, error) {
	if err := s.Verify(ctx, domain.VerifyRequest{Email: form.Email, TaxID: form.TaxID}); err != nil {
		return nil, err
	}

	session, err := s.payments.CreateCheckoutSession(ctx, paymentdomain.CreateCheckoutSessionRequest{
		CustomerEmail: form.Email,
		SuccessURL:    s.baseURL + "/inscription/confirmation?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.baseURL + "/inscription",
		Metadata:      form.Metadata(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("checkout session created",
		zap.String("session_id", session.ID),
	)
	return &domain.CheckoutRedirect{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (s *service) CreatePaymentIntent(ctx context.Context, form domain.Form) (*domain.PaymentIntentResult, error) {
	// The form is optional here: an intent can be opened before the
	// form is filled in, so only a submitted form is pre-checked.
	if form != (domain.Form{}) {
		if err := s.Verify(ctx, domain.VerifyRequest{Email: form.Email, TaxID: form.TaxID}); err != nil {
			return nil, err
		}
	}

	intent, err := s.payments.CreatePaymentIntent(ctx, paymentdomain.CreatePaymentIntentRequest{
		Amount:   subscriptionAmount,
		Currency: subscriptionCurrency,
		Metadata: form.Metadata(),
	})
	if err != nil {
		return nil, err
	}
	return &domain.PaymentIntentResult{ClientSecret: intent.ClientSecret}, nil
}

// compensation undoes one completed provisioning step during rollback.
type compensation struct {
	name string
	run  func(ctx context.Context) error
}

func (s *service) Complete(ctx context.Context, sessionID string) (*domain.Credentials, error) {
	session, err := s.payments.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid() {
		return nil, domain.ErrPaymentNotCompleted
	}

	form, err := domain.FormFromMetadata(session.Metadata)
	if err != nil {
		return nil, err
	}

	plaintext := password.Generate()
	var compensations []compensation

	user, err := s.authsvc.CreateIdentity(ctx, authdomain.CreateIdentityRequest{
		Email:          form.Email,
		Password:       plaintext,
		EmailConfirmed: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthCreationFailed, err)
	}
	compensations = append(compensations, compensation{
		name: "delete identity",
		run: func(ctx context.Context) error {
			return s.authsvc.DeleteIdentity(ctx, user.ID)
		},
	})

	if err := s.authsvc.StoreTemporaryPassword(ctx, user.ID, plaintext); err != nil {
		return nil, s.rollback(ctx, compensations, fmt.Errorf("%w: %v", domain.ErrTempPasswordPersistFailed, err))
	}
	compensations = append(compensations, compensation{
		name: "delete temporary password",
		run: func(ctx context.Context) error {
			return s.authsvc.DeleteTemporaryPassword(ctx, user.ID)
		},
	})

	org, err := s.orgsvc.Create(ctx, orgdomain.CreateOrganizationRequest{
		UserID:     user.ID,
		Name:       form.Name,
		TaxID:      form.TaxID,
		Address:    form.Address,
		City:       form.City,
		PostalCode: form.PostalCode,
		Email:      form.Email,
		Phone:      form.Phone,
	})
	if err != nil {
		return nil, s.rollback(ctx, compensations, fmt.Errorf("%w: %v", domain.ErrOrganizationCreationFailed, err))
	}
	compensations = append(compensations, compensation{
		name: "delete organization",
		run: func(ctx context.Context) error {
			return s.orgsvc.Delete(ctx, org.ID)
		},
	})

	givenName, familyName := domain.SplitResponsibleName(form.ResponsibleName)
	if _, err := s.orgsvc.AddAdmin(ctx, orgdomain.AddAdminRequest{
		OrgID:      org.ID,
		UserID:     user.ID,
		GivenName:  givenName,
		FamilyName: familyName,
		Email:      form.Email,
		Phone:      form.Phone,
	}); err != nil {
		return nil, s.rollback(ctx, compensations, fmt.Errorf("%w: %v", domain.ErrAdminUserCreationFailed, err))
	}

	s.sendWelcome(ctx, org.Name, user.Email)

	s.log.Info("registration completed",
		zap.String("org_id", org.ID.String()),
		zap.String("user_id", user.ID.String()),
	)
	return &domain.Credentials{
		Email:    user.Email,
		Password: plaintext,
	}, nil
}

// rollback undoes completed steps in reverse order. Compensation
// failures do not stop the remaining compensations; they are joined
// onto the causing error so nothing is silently lost.
func (s *service) rollback(ctx context.Context, compensations []compensation, cause error) error {
	// Rollback must run even when the request context is already done.
	ctx = context.WithoutCancel(ctx)

	errs := []error{cause}
	for i := len(compensations) - 1; i >= 0; i-- {
		step := compensations[i]
		if err := step.run(ctx); err != nil {
			s.log.Error("registration rollback step failed",
				zap.String("step", step.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("rollback %s: %w", step.name, err))
		}
	}
	return errors.Join(errs...)
}

// sendWelcome is best effort: a mail failure must not fail a paid
// registration.
func (s *service) sendWelcome(ctx context.Context, orgName, to string) {
	body, err := email.WelcomeBody(email.WelcomeData{
		OrgName:  orgName,
		Email:    to,
		LoginURL: s.baseURL + "/connexion",
	})
	if err != nil {
		s.log.Warn("welcome email render failed", zap.Error(err))
		return
	}
	if err := s.mailer.Send(ctx, []string{to}, "Bienvenue sur Drivia", body); err != nil {
		s.log.Warn("welcome email send failed", zap.Error(err))
	}
}
