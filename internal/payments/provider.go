// Package payments wraps the external payment provider. Services depend
// on the Provider interface so tests can substitute a fake.
package payments

import "context"

// CheckoutParams describes a hosted checkout session to create.
type CheckoutParams struct {
	AmountCents   int64
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the provider-side session the client is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the provider's view of a session at verification time.
type SessionStatus struct {
	ID          string
	Paid        bool
	Status      string // provider payment status, e.g. "paid", "unpaid"
	AmountCents int64
	Metadata    map[string]string
}

// PaymentIntent carries the client secret for an embedded payment flow.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Metadata     map[string]string
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}
