// Package stripe implements the payment provider against the Stripe
// HTTP API using form-encoded requests.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/drivia/drivia/internal/config"
	"github.com/drivia/drivia/internal/payment/domain"
	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.stripe.com"

type checkoutSessionResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	apiKey  string
	priceID string
	baseURL string
	client  *http.Client
}

func New(cfg config.Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.Stripe.SecretKey)
	if apiKey == "" {
		return nil, domain.ErrInvalidConfig
	}
	return &Client{
		apiKey:  apiKey,
		priceID: strings.TrimSpace(cfg.Stripe.PriceID),
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 12 * time.Second},
	}, nil
}

// CreateCheckoutSession opens a subscription checkout for the platform
// plan. The caller's metadata travels on the session and is read back
// after payment.
func (c *Client) CreateCheckoutSession(
	ctx context.Context,
	req domain.CreateCheckoutSessionRequest,
) (*domain.CheckoutSession, error) {
	values := url.Values{}
	values.Set("mode", "subscription")
	values.Set("line_items[0][price]", c.priceID)
	values.Set("line_items[0][quantity]", "1")
	values.Set("allow_promotion_codes", "true")
	values.Set("billing_address_collection", "required")
	values.Set("customer_email", req.CustomerEmail)
	values.Set("success_url", req.SuccessURL)
	values.Set("cancel_url", req.CancelURL)
	for key, value := range req.Metadata {
		values.Set("metadata["+key+"]", value)
	}

	// A fresh key per call: an abandoned checkout must be retryable
	// with corrected fields, which a reused key would reject.
	var session checkoutSessionResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v1/checkout/sessions", values, uuid.NewString(), &session); err != nil {
		return nil, err
	}
	return toCheckoutSession(session), nil
}

func (c *Client) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	var session checkoutSessionResponse
	if err := c.doRequest(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil, "", &session); err != nil {
		return nil, err
	}
	return toCheckoutSession(session), nil
}

func (c *Client) CreatePaymentIntent(
	ctx context.Context,
	req domain.CreatePaymentIntentRequest,
) (*domain.PaymentIntent, error) {
	values := url.Values{}
	values.Set("amount", strconv.FormatInt(req.Amount, 10))
	values.Set("currency", strings.ToLower(req.Currency))
	values.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range req.Metadata {
		values.Set("metadata["+key+"]", value)
	}

	var intent paymentIntentResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v1/payment_intents", values, "", &intent); err != nil {
		return nil, err
	}
	return &domain.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}

func (c *Client) doRequest(
	ctx context.Context,
	method string,
	path string,
	values url.Values,
	idempotencyKey string,
	out any,
) error {
	var bodyReader *strings.Reader
	if values != nil {
		bodyReader = strings.NewReader(values.Encode())
	} else {
		bodyReader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var stripeErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err != nil {
			return fmt.Errorf("%w: status %d", domain.ErrProvider, resp.StatusCode)
		}
		message := strings.TrimSpace(stripeErr.Error.Message)
		if message == "" {
			message = "stripe_request_failed"
		}
		return fmt.Errorf("%w: %s", domain.ErrProvider, message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	return nil
}

func toCheckoutSession(resp checkoutSessionResponse) *domain.CheckoutSession {
	metadata := resp.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &domain.CheckoutSession{
		ID:            resp.ID,
		URL:           resp.URL,
		PaymentStatus: resp.PaymentStatus,
		CustomerEmail: resp.CustomerEmail,
		Metadata:      metadata,
	}
}
