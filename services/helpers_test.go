package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/pkg/events"
	"foodhub/pkg/payment"
	"foodhub/pkg/testdb"
	"foodhub/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func identity(u *entity.User) authz.Identity {
	return authz.Identity{UserID: u.ID, Role: u.Role}
}

type fakeGateway struct {
	mu         sync.Mutex
	configured bool
	createErr  error
	expireErr  error
	requests   []payment.SessionRequest
	expired    []string
}

func (g *fakeGateway) Configured() bool { return g.configured }

func (g *fakeGateway) CreateSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.requests = append(g.requests, req)
	id := fmt.Sprintf("cs_test_%d", len(g.requests))
	return &payment.Session{ID: id, URL: "https://pay.example/" + id}, nil
}

func (g *fakeGateway) ExpireSession(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.expireErr != nil {
		return g.expireErr
	}
	g.expired = append(g.expired, id)
	return nil
}

func (g *fakeGateway) ParseWebhook([]byte, string) (*payment.Event, error) {
	return nil, errors.New("not used")
}

type recorder struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (r *recorder) PublishOrder(_ context.Context, ev events.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

type checkoutFixture struct {
	db    *gorm.DB
	svc   *CheckoutService
	cart  *CartService
	gw    *fakeGateway
	pub   *recorder
	user  *entity.User
	rest  *entity.Restaurant
	pizza *entity.Dish
	soda  *entity.Dish
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := testdb.Open(t)
	log := quietLogger()
	gw := &fakeGateway{configured: true}
	pub := &recorder{}

	orders := repository.NewOrderRepository(db)
	carts := repository.NewCartRepository(db)
	reviews := repository.NewReviewRepository(db)
	dishes := repository.NewDishRepository(db)

	owner := testdb.User(t, db, "owner", entity.RoleStaff)
	rest := testdb.Restaurant(t, db, owner.ID, "Luigi")
	return &checkoutFixture{
		db:    db,
		svc:   NewCheckoutService(db, orders, carts, reviews, gw, pub, CheckoutConfig{Currency: "usd", BaseURL: "http://shop.test"}, log),
		cart:  NewCartService(carts, dishes, log),
		gw:    gw,
		pub:   pub,
		user:  testdb.User(t, db, "alice", entity.RoleUser),
		rest:  rest,
		pizza: testdb.Dish(t, db, rest.ID, "Pizza", 1250),
		soda:  testdb.Dish(t, db, rest.ID, "Soda", 300),
	}
}

func (f *checkoutFixture) add(t *testing.T, d *entity.Dish, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		if _, err := f.cart.AddDish(context.Background(), identity(f.user), d.ID); err != nil {
			t.Fatalf("add dish: %v", err)
		}
	}
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Unscoped().Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func itoa(n uint) string { return fmt.Sprint(n) }
