package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockAdjustment is one signed delta against a product's stock. A
// batch of adjustments is applied all-or-nothing: no product may end
// up below zero.
type StockAdjustment struct {
	ProductID string
	Delta     int
}
