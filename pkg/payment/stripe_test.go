package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v79/webhook"
)

const testSecret = "whsec_test_secret"

func sign(t *testing.T, body []byte, secret string) string {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   body,
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return sp.Header
}

func TestParseWebhook_SessionCompleted(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testSecret)
	body := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_test_123","object":"checkout.session"}}}`)

	ev, err := g.ParseWebhook(body, sign(t, body, testSecret))
	if err != nil {
		t.Fatalf("ParseWebhook: %v", err)
	}
	if ev.Type != EventSessionCompleted {
		t.Fatalf("type = %q", ev.Type)
	}
	if ev.SessionID != "cs_test_123" {
		t.Fatalf("session id = %q", ev.SessionID)
	}
}

func TestParseWebhook_RejectsBadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testSecret)
	body := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	_, err := g.ParseWebhook(body, sign(t, body, "whsec_other"))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	_, err = g.ParseWebhook(body, "")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for empty header, got %v", err)
	}
}

func TestParseWebhook_TamperedBody(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testSecret)
	body := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	header := sign(t, body, testSecret)

	tampered := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_2"}}}`)
	if _, err := g.ParseWebhook(tampered, header); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestParseWebhook_Malformed(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testSecret)
	body := []byte(`not json`)
	if _, err := g.ParseWebhook(body, sign(t, body, testSecret)); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
}

func TestParseWebhook_OtherEventPassesThrough(t *testing.T) {
	g := NewStripeGateway("sk_test_x", testSecret)
	body := []byte(`{"id":"evt_2","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)
	ev, err := g.ParseWebhook(body, sign(t, body, testSecret))
	if err != nil {
		t.Fatalf("ParseWebhook: %v", err)
	}
	if ev.SessionID != "" {
		t.Fatalf("unexpected session id %q", ev.SessionID)
	}
}

func TestNotConfigured(t *testing.T) {
	g := NewStripeGateway("", "")
	if g.Configured() {
		t.Fatal("gateway without keys reports configured")
	}
	if _, err := g.CreateSession(context.Background(), SessionRequest{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := g.ParseWebhook([]byte(`{}`), "t=1,v1=abc"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
