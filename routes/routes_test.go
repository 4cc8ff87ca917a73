package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodhub/configs"
	"foodhub/pkg/payment"
	"foodhub/pkg/testdb"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type client struct {
	t     *testing.T
	r     *gin.Engine
	token string
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func (c *client) login(username, role string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/auth/register", map[string]any{
		"username": username, "email": username + "@example.com", "password": "password1",
		"phoneNumber": "0800000000", "role": role,
	})
	if code != http.StatusCreated {
		c.t.Fatalf("register %s = %d %v", username, code, body)
	}
	code, body = c.do(http.MethodPost, "/auth/login", map[string]any{"login": username, "password": "password1"})
	if code != http.StatusOK {
		c.t.Fatalf("login %s = %d %v", username, code, body)
	}
	c.token = body["token"].(string)
}

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &configs.Config{JWTSecret: "test", JWTTTL: time.Hour, PaymentCurrency: "usd", PublicBaseURL: "http://shop.test"}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB: testdb.Open(t), Cfg: cfg, Log: log,
		Gateway: payment.NewStripeGateway("", ""),
	})
	return r
}

func TestRoutes_BrowseAndFillCart(t *testing.T) {
	r := newRouter(t)

	chef := &client{t: t, r: r}
	chef.login("chef", "staff")
	code, body := chef.do(http.MethodPost, "/restaurants", map[string]any{
		"name": "Som Tam Corner", "openingTime": "10:00", "closingTime": "20:00", "newCuisines": "Isaan",
	})
	if code != http.StatusCreated {
		t.Fatalf("create restaurant = %d %v", code, body)
	}
	restID := uint(body["data"].(map[string]any)["ID"].(float64))

	code, body = chef.do(http.MethodPost, fmt.Sprintf("/restaurants/%d/dishes", restID), map[string]any{"name": "Som Tam", "price": "4.50"})
	if code != http.StatusCreated {
		t.Fatalf("create dish = %d %v", code, body)
	}
	dishID := uint(body["data"].(map[string]any)["ID"].(float64))

	diner := &client{t: t, r: r}
	diner.login("diner", "user")
	if code, _ := diner.do(http.MethodPost, "/restaurants", map[string]any{"name": "x"}); code != http.StatusForbidden {
		t.Fatalf("user create restaurant = %d, want 403", code)
	}

	anon := &client{t: t, r: r}
	if code, body := anon.do(http.MethodGet, "/restaurants?q=som", nil); code != http.StatusOK || len(body["data"].([]any)) != 1 {
		t.Fatalf("explore = %d %v", code, body)
	}
	if code, _ := anon.do(http.MethodGet, "/cart", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous cart = %d, want 401", code)
	}

	for i := 0; i < 2; i++ {
		if code, body := diner.do(http.MethodPost, fmt.Sprintf("/cart/dishes/%d", dishID), nil); code != http.StatusOK {
			t.Fatalf("add = %d %v", code, body)
		}
	}
	code, body = diner.do(http.MethodGet, "/cart", nil)
	if code != http.StatusOK || body["data"].(map[string]any)["total"].(float64) != 900 {
		t.Fatalf("cart = %d %v", code, body)
	}

	// ยังไม่ได้ตั้งค่า stripe
	if code, body := diner.do(http.MethodPost, "/checkout", nil); code != http.StatusServiceUnavailable {
		t.Fatalf("checkout = %d %v", code, body)
	}

	code, body = diner.do(http.MethodPost, fmt.Sprintf("/restaurants/%d/reviews", restID), map[string]any{"rating": 9})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("bad review = %d %v", code, body)
	}
	if code, body := diner.do(http.MethodPost, fmt.Sprintf("/restaurants/%d/reviews", restID), map[string]any{"rating": 4}); code != http.StatusCreated {
		t.Fatalf("review = %d %v", code, body)
	}
	if code, body := diner.do(http.MethodGet, "/orders", nil); code != http.StatusOK || len(body["data"].([]any)) != 0 {
		t.Fatalf("orders = %d %v", code, body)
	}
}
