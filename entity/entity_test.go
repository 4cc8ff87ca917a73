package entity

import "testing"

func TestCartTotal_UsesLivePrices(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Quantity: 2, Dish: Dish{Price: 1250}},
		{Quantity: 1, Dish: Dish{Price: 300}},
	}}
	if got := c.Total(); got != 2800 {
		t.Fatalf("Total() = %d, want 2800", got)
	}
	c.Items[0].Dish.Price = 1000
	if got := c.Total(); got != 2300 {
		t.Fatalf("Total() after price change = %d, want 2300", got)
	}
	if got := (&Cart{}).Total(); got != 0 {
		t.Fatalf("empty Total() = %d", got)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for st, want := range map[OrderStatus]bool{
		OrderPending: false, OrderPaid: true, OrderFailed: true, OrderCancelled: true,
	} {
		if st.Terminal() != want {
			t.Errorf("%s.Terminal() = %v", st, !want)
		}
	}
}
