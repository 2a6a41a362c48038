package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrder_RecalculateTotals(t *testing.T) {
	order := &Order{
		Lines: []OrderLine{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}

	order.RecalculateTotals()

	if want := decimal.RequireFromString("24.98"); !order.TotalAmount.Equal(want) {
		t.Errorf("expected total %s, got %s", want, order.TotalAmount)
	}
	if want := decimal.RequireFromString("19.98"); !order.Lines[0].LineTotal.Equal(want) {
		t.Errorf("expected first line total %s, got %s", want, order.Lines[0].LineTotal)
	}
	if want := decimal.RequireFromString("5.00"); !order.Lines[1].LineTotal.Equal(want) {
		t.Errorf("expected second line total %s, got %s", want, order.Lines[1].LineTotal)
	}
}

func TestOrder_RecalculateTotals_NoLines(t *testing.T) {
	order := &Order{}
	order.RecalculateTotals()

	if !order.TotalAmount.Equal(decimal.Zero) {
		t.Errorf("expected zero total, got %s", order.TotalAmount)
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusDraft, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusDraft, OrderStatusCancelled, false},
		{OrderStatusDraft, OrderStatusDraft, false},
		{OrderStatusConfirmed, OrderStatusConfirmed, false},
		{OrderStatusConfirmed, OrderStatusDraft, false},
		{OrderStatusCancelled, OrderStatusDraft, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
