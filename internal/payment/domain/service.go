// Package domain defines the payment provider abstraction used by
// registration checkout.
package domain

import "context"

// Provider is implemented by payment gateway clients.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, req CreatePaymentIntentRequest) (*PaymentIntent, error)
}

type CreateCheckoutSessionRequest struct {
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type CreatePaymentIntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// CheckoutSession mirrors the subset of the gateway checkout object the
// application reads.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	CustomerEmail string
	Metadata      map[string]string
}

// PaymentStatusPaid is the checkout payment_status value for a settled
// session.
const PaymentStatusPaid = "paid"

// Paid reports whether the session has been paid.
func (s *CheckoutSession) Paid() bool {
	return s != nil && s.PaymentStatus == PaymentStatusPaid
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}
