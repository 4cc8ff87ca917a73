package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/pkg/events"
	"foodhub/pkg/payment"
	"foodhub/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Landing steps after the processor redirects the user back.
const (
	NextReceipt = "receipt"
	NextReview  = "review"
)

type CheckoutConfig struct {
	Currency string
	BaseURL  string
}

// CheckoutService drives Order through PENDING -> PAID | FAILED | CANCELLED.
type CheckoutService struct {
	DB      *gorm.DB
	Orders  *repository.OrderRepository
	Carts   *repository.CartRepository
	Reviews *repository.ReviewRepository
	Gateway payment.Gateway
	Events  events.Publisher
	cfg     CheckoutConfig
	log     *logrus.Entry
}

func NewCheckoutService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	carts *repository.CartRepository,
	reviews *repository.ReviewRepository,
	gw payment.Gateway,
	pub events.Publisher,
	cfg CheckoutConfig,
	log *logrus.Logger,
) *CheckoutService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CheckoutService{
		DB: db, Orders: orders, Carts: carts, Reviews: reviews,
		Gateway: gw, Events: pub, cfg: cfg,
		log: log.WithField("service", "checkout"),
	}
}

type CheckoutResult struct {
	OrderID     uint   `json:"orderId"`
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
	TotalPrice  int64  `json:"totalPrice"`
}

type ConfirmResult struct {
	Order *entity.Order
	// Applied is false when the order had already left PENDING.
	Applied bool
}

type Landing struct {
	OrderID      uint               `json:"orderId"`
	Status       entity.OrderStatus `json:"status"`
	TotalPrice   int64              `json:"totalPrice"`
	Next         string             `json:"next"`
	RestaurantID uint               `json:"restaurantId,omitempty"`
}

// priceCart freezes the cart at today's dish prices.
func priceCart(c *entity.Cart) ([]entity.CheckoutLine, int64) {
	lines := make([]entity.CheckoutLine, 0, len(c.Items))
	var total int64
	for _, it := range c.Items {
		l := entity.CheckoutLine{
			DishID:       it.DishID,
			RestaurantID: it.Dish.RestaurantID,
			Name:         it.Dish.Name,
			UnitPrice:    it.Dish.Price,
			Quantity:     it.Quantity,
			LineTotal:    it.Subtotal(),
		}
		total += l.LineTotal
		lines = append(lines, l)
	}
	return lines, total
}

// Initiate สร้าง Order(PENDING) จากตะกร้า แล้วเปิด payment session
func (s *CheckoutService) Initiate(ctx context.Context, id authz.Identity) (*CheckoutResult, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	if s.Gateway == nil || !s.Gateway.Configured() {
		return nil, ErrPaymentNotConfigured
	}

	cart, err := s.Carts.GetCartWithItems(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	lines, total := priceCart(cart)
	order := &entity.Order{
		UserID:     id.UserID,
		Status:     entity.OrderPending,
		TotalPrice: total,
		Currency:   s.cfg.Currency,
		Snapshot:   datatypes.NewJSONType(lines),
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	log := s.log.WithFields(logrus.Fields{"order_id": order.ID, "user_id": id.UserID})

	req := payment.SessionRequest{
		OrderID:    order.ID,
		UserID:     id.UserID,
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.BaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  fmt.Sprintf("%s/checkout/cancel?order_id=%d", s.cfg.BaseURL, order.ID),
	}
	for _, l := range lines {
		req.Lines = append(req.Lines, payment.LineItem{Name: l.Name, UnitAmount: l.UnitPrice, Quantity: int64(l.Quantity)})
	}

	sess, err := s.Gateway.CreateSession(ctx, req)
	if err != nil {
		log.WithError(err).Warn("payment session creation failed, discarding order")
		s.discard(ctx, order.ID, log)
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}
	if err := s.Orders.SetSessionID(ctx, order.ID, sess.ID); err != nil {
		log.WithError(err).Error("store payment session id failed, discarding order")
		s.discard(ctx, order.ID, log)
		if xerr := s.Gateway.ExpireSession(context.WithoutCancel(ctx), sess.ID); xerr != nil {
			log.WithError(xerr).Warn("expire orphan session failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	log.WithFields(logrus.Fields{"session_id": sess.ID, "total": total, "lines": len(lines)}).Info("checkout initiated")
	return &CheckoutResult{OrderID: order.ID, SessionID: sess.ID, RedirectURL: sess.URL, TotalPrice: total}, nil
}

// discard removes an order whose payment session never came to exist.
func (s *CheckoutService) discard(ctx context.Context, orderID uint, log *logrus.Entry) {
	if err := s.Orders.HardDelete(context.WithoutCancel(ctx), orderID); err != nil {
		log.WithError(err).Error("delete orphan order failed")
	}
}

// HandleEvent dispatches a verified webhook event. Unknown types are acknowledged and ignored.
func (s *CheckoutService) HandleEvent(ctx context.Context, ev *payment.Event) (*ConfirmResult, error) {
	switch ev.Type {
	case payment.EventSessionCompleted:
		return s.Confirm(ctx, ev.SessionID)
	case payment.EventSessionExpired:
		return s.Close(ctx, ev.SessionID, entity.OrderCancelled)
	case payment.EventSessionPaymentFailed:
		return s.Close(ctx, ev.SessionID, entity.OrderFailed)
	default:
		s.log.WithFields(logrus.Fields{"event_id": ev.ID, "type": ev.Type}).Debug("ignoring webhook event")
		return nil, nil
	}
}

// Confirm moves the order to PAID, materializes the frozen snapshot as
// OrderItems and clears the cart, all in one transaction. Replays for an
// order that is no longer PENDING change nothing.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	res := &ConfirmResult{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Orders.FindBySessionID(tx, sessionID)
		if err != nil {
			return notFound(err, "order")
		}
		res.Order = o
		if o.Status.Terminal() {
			return nil
		}

		now := time.Now()
		n, err := s.Orders.UpdateStatusGuard(tx, o.ID, entity.OrderPending, entity.OrderPaid, map[string]any{"paid_at": now})
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		for _, l := range o.Snapshot.Data() {
			oi := entity.OrderItem{
				OrderID:      o.ID,
				DishID:       l.DishID,
				RestaurantID: l.RestaurantID,
				Name:         l.Name,
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
				Total:        l.LineTotal,
			}
			if err := s.Orders.CreateOrderItem(tx, &oi); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		if _, err := s.Carts.ClearCart(tx, o.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		o.Status = entity.OrderPaid
		o.PaidAt = &now
		res.Applied = true
		return nil
	})
	log := s.log.WithField("session_id", sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("webhook for unknown session")
		} else {
			log.WithError(err).Error("confirm payment failed, rolled back")
		}
		return nil, err
	}

	if !res.Applied {
		log.WithFields(logrus.Fields{"order_id": res.Order.ID, "status": res.Order.Status}).Info("duplicate confirmation ignored")
		return res, nil
	}
	log.WithField("order_id", res.Order.ID).Info("order paid")
	s.publish(ctx, res.Order, "order.paid", sessionID)
	return res, nil
}

// Close ends a PENDING order as FAILED or CANCELLED.
func (s *CheckoutService) Close(ctx context.Context, sessionID string, to entity.OrderStatus) (*ConfirmResult, error) {
	o, err := s.Orders.FindBySessionID(s.DB.WithContext(ctx), sessionID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return s.transition(ctx, o, to, sessionID)
}

func (s *CheckoutService) transition(ctx context.Context, o *entity.Order, to entity.OrderStatus, sessionID string) (*ConfirmResult, error) {
	n, err := s.Orders.UpdateStatusGuard(s.DB.WithContext(ctx), o.ID, entity.OrderPending, to, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &ConfirmResult{Order: o}, nil
	}
	o.Status = to
	s.log.WithFields(logrus.Fields{"order_id": o.ID, "status": to}).Info("order closed")
	s.publish(ctx, o, "order."+statusEventSuffix(to), sessionID)
	return &ConfirmResult{Order: o, Applied: true}, nil
}

func statusEventSuffix(st entity.OrderStatus) string {
	switch st {
	case entity.OrderPaid:
		return "paid"
	case entity.OrderFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

// SuccessLanding decides whether the user sees the receipt or is asked for a review.
func (s *CheckoutService) SuccessLanding(ctx context.Context, id authz.Identity, sessionID string) (*Landing, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	if sessionID == "" {
		return nil, invalid("session_id", "is required")
	}
	o, err := s.Orders.FindBySessionForUser(ctx, sessionID, id.UserID)
	if err != nil {
		return nil, notFound(err, "order")
	}

	landing := &Landing{OrderID: o.ID, Status: o.Status, TotalPrice: o.TotalPrice, Next: NextReceipt}
	if o.Status != entity.OrderPaid {
		return landing, nil
	}

	rids, err := s.Orders.RestaurantIDs(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.Reviews.ReviewedRestaurantIDs(ctx, id.UserID, rids)
	if err != nil {
		return nil, err
	}
	for _, rid := range rids {
		if !reviewed[rid] {
			landing.Next = NextReview
			landing.RestaurantID = rid
			break
		}
	}
	return landing, nil
}

// CancelLanding ยกเลิก order ที่ยัง PENDING ของ user เอง
func (s *CheckoutService) CancelLanding(ctx context.Context, id authz.Identity, orderID uint) (*Landing, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	o, err := s.Orders.GetOrderForUser(ctx, id.UserID, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	sid := ""
	if o.PaymentSessionID != nil {
		sid = *o.PaymentSessionID
	}

	if o.Status != entity.OrderPending {
		return &Landing{OrderID: o.ID, Status: o.Status, TotalPrice: o.TotalPrice, Next: NextReceipt}, nil
	}
	// expire ก่อน ถ้า session จ่ายไปแล้ว order ต้องรอ webhook เป็น PAID
	if sid != "" && s.Gateway != nil {
		if err := s.Gateway.ExpireSession(ctx, sid); err != nil {
			s.log.WithError(err).WithField("order_id", o.ID).Warn("expire session failed, order left pending")
			return &Landing{OrderID: o.ID, Status: o.Status, TotalPrice: o.TotalPrice, Next: NextReceipt}, nil
		}
	}

	res, err := s.transition(ctx, o, entity.OrderCancelled, sid)
	if err != nil {
		return nil, err
	}
	return &Landing{OrderID: o.ID, Status: res.Order.Status, TotalPrice: o.TotalPrice, Next: NextReceipt}, nil
}

// events are best effort; the database is the source of truth
func (s *CheckoutService) publish(ctx context.Context, o *entity.Order, typ, sessionID string) {
	ev := events.OrderEvent{
		Type:       typ,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
		SessionID:  sessionID,
		At:         time.Now().UTC(),
	}
	if err := s.Events.PublishOrder(context.WithoutCancel(ctx), ev); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Warn("publish order event failed")
	}
}
