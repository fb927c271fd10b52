package domain

import "context"

type Service interface {
	// Verify checks the form against existing registrations before any
	// payment is taken. The email is checked before the tax id.
	Verify(ctx context.Context, req VerifyRequest) error

	// StartCheckout opens a hosted checkout session carrying the form in
	// its metadata and returns the redirect URL.
	StartCheckout(ctx context.Context, form Form) (*CheckoutRedirect, error)

	// CreatePaymentIntent opens a payment intent for the embedded payment
	// element variant of the flow.
	CreatePaymentIntent(ctx context.Context, form Form) (*PaymentIntentResult, error)

	// Complete provisions the account for a paid checkout session and
	// returns the credentials to show the owner once.
	Complete(ctx context.Context, sessionID string) (*Credentials, error)
}

type VerifyRequest struct {
	Email string
	TaxID string
}

type CheckoutRedirect struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type PaymentIntentResult struct {
	ClientSecret string `json:"client_secret"`
}

// Credentials is returned exactly once, at the end of a successful
// registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
