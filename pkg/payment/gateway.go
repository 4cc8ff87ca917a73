// Package payment talks to the external payment processor: it opens hosted
// checkout sessions and authenticates the processor's webhook callbacks.
package payment

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured    = errors.New("payment processor is not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook payload")
)

// Event types the checkout flow reacts to.
const (
	EventSessionCompleted     = "checkout.session.completed"
	EventSessionExpired       = "checkout.session.expired"
	EventSessionPaymentFailed = "checkout.session.async_payment_failed"
)

type LineItem struct {
	Name       string
	UnitAmount int64 // minor units
	Quantity   int64
}

type SessionRequest struct {
	OrderID    uint
	UserID     uint
	Currency   string
	Lines      []LineItem
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string
	URL string
}

// Event is a verified webhook callback reduced to what checkout needs.
type Event struct {
	ID        string
	Type      string
	SessionID string
}

type Gateway interface {
	Configured() bool
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	ExpireSession(ctx context.Context, sessionID string) error
	// ParseWebhook verifies the signature over the raw body before decoding it.
	ParseWebhook(payload []byte, signatureHeader string) (*Event, error)
}
