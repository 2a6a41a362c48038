package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status change is legal. The only
// transitions are DRAFT -> CONFIRMED and CONFIRMED -> CANCELLED; every
// other pair, including re-entrant ones, is rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return next == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return next == OrderStatusCancelled
	}
	return false
}

type OrderLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Subtotal is quantity x unit price, computed in fixed-point decimal.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Lines       []OrderLine     `json:"lines"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// RecalculateTotals fills every line's LineTotal and the order's
// TotalAmount from the lines. Must be called whenever lines are set.
func (o *Order) RecalculateTotals() {
	total := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].LineTotal = o.Lines[i].Subtotal()
		total = total.Add(o.Lines[i].LineTotal)
	}
	o.TotalAmount = total
}
