package cache

import (
	"context"
	"errors"
	"testing"
)

func TestFetch_NilCacheCallsLoad(t *testing.T) {
	var c *Cache
	calls := 0
	var got string
	err := Fetch(context.Background(), c, "k", &got, func() (string, error) {
		calls++
		return "v", nil
	})
	if err != nil || got != "v" || calls != 1 {
		t.Fatalf("got=%q calls=%d err=%v", got, calls, err)
	}

	boom := errors.New("boom")
	if err := Fetch(context.Background(), c, "k", &got, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	// no-ops on a disabled cache
	c.Invalidate(context.Background(), "k")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRestaurantKey(t *testing.T) {
	if k := RestaurantKey(12); k != "restaurant:12" {
		t.Fatalf("key = %q", k)
	}
}
