package events

import (
	"context"
	"errors"
	"time"
)

// OrderEvent is emitted after an order changes status.
type OrderEvent struct {
	Type       string    `json:"type"` // order.paid, order.cancelled, order.failed
	OrderID    uint      `json:"orderId"`
	UserID     uint      `json:"userId"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"totalPrice"`
	Currency   string    `json:"currency"`
	SessionID  string    `json:"sessionId,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	PublishOrder(ctx context.Context, ev OrderEvent) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) PublishOrder(context.Context, OrderEvent) error { return nil }

// Fanout delivers to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) PublishOrder(ctx context.Context, ev OrderEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishOrder(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
