// Package engine owns the sales order state machine: DRAFT orders are
// created without touching inventory, confirmation atomically
// validates and decrements stock for every line, and cancellation
// atomically restores it. All stock mutation funnels through the
// catalog store's batch adjustment inside a single transaction, so a
// half-applied confirmation can never be observed.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
)

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id string, status domain.OrderStatus) error
}

type CatalogStore interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	TryAdjustStock(ctx context.Context, tx *sql.Tx, adjustments []domain.StockAdjustment) error
}

type CustomerStore interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

type Engine struct {
	db        *sql.DB
	orders    OrderStore
	catalog   CatalogStore
	customers CustomerStore
	logger    *slog.Logger
}

func New(db *sql.DB, orders OrderStore, catalog CatalogStore, customers CustomerStore, logger *slog.Logger) *Engine {
	return &Engine{
		db:        db,
		orders:    orders,
		catalog:   catalog,
		customers: customers,
		logger:    logger,
	}
}

// CreateOrder builds a DRAFT order from the given lines. The caller
// supplies each line's unit price; the engine does not re-price
// against the catalog. Stock is neither checked nor reserved here:
// draft orders are provisional.
func (e *Engine) CreateOrder(ctx context.Context, customerID string, lines []domain.OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must have at least one line: %w", domain.ErrInvalidArgument)
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d: quantity must be positive: %w", i, domain.ErrInvalidArgument)
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("line %d: unit price must not be negative: %w", i, domain.ErrInvalidArgument)
		}
	}

	customer, err := e.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
	}

	for _, line := range lines {
		product, err := e.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product %s is inactive: %w", line.ProductID, domain.ErrInvalidState)
		}
	}

	order := &domain.Order{
		CustomerID: customerID,
		Lines:      lines,
		Status:     domain.OrderStatusDraft,
	}
	order.RecalculateTotals()

	if err := e.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	e.logger.Info("order created", "order_id", order.ID, "customer_id", customerID,
		"lines", len(order.Lines), "total", order.TotalAmount)
	return order, nil
}

// ConfirmOrder transitions DRAFT -> CONFIRMED, decrementing stock for
// every line. The order row lock, the status check, and the batch
// stock adjustment share one transaction: either every line's stock
// is decremented and the status flips, or nothing changes.
func (e *Engine) ConfirmOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	order, err := e.orders.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}

	if !order.Status.CanTransitionTo(domain.OrderStatusConfirmed) {
		if order.Status == domain.OrderStatusConfirmed {
			return nil, fmt.Errorf("order %s has already been confirmed: %w", orderID, domain.ErrInvalidState)
		}
		return nil, fmt.Errorf("order %s has been cancelled and cannot be confirmed: %w", orderID, domain.ErrInvalidState)
	}

	adjustments := make([]domain.StockAdjustment, 0, len(order.Lines))
	for _, line := range order.Lines {
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductID: line.ProductID,
			Delta:     -line.Quantity,
		})
	}

	if err := e.catalog.TryAdjustStock(ctx, tx, adjustments); err != nil {
		return nil, err
	}

	if err := e.orders.SetStatus(ctx, tx, orderID, domain.OrderStatusConfirmed); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusConfirmed
	e.logger.Info("order confirmed", "order_id", orderID, "lines", len(order.Lines))
	return order, nil
}

// CancelOrder transitions CONFIRMED -> CANCELLED, restoring every
// line's stock. Exact inverse of ConfirmOrder under the same
// transactional scope. Draft orders never reserved stock, so they
// cannot be cancelled.
func (e *Engine) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	order, err := e.orders.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}

	if !order.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		if order.Status == domain.OrderStatusCancelled {
			return nil, fmt.Errorf("order %s has already been cancelled: %w", orderID, domain.ErrInvalidState)
		}
		return nil, fmt.Errorf("order %s is not confirmed: only confirmed orders can be cancelled: %w", orderID, domain.ErrInvalidState)
	}

	adjustments := make([]domain.StockAdjustment, 0, len(order.Lines))
	for _, line := range order.Lines {
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductID: line.ProductID,
			Delta:     line.Quantity,
		})
	}

	if err := e.catalog.TryAdjustStock(ctx, tx, adjustments); err != nil {
		return nil, err
	}

	if err := e.orders.SetStatus(ctx, tx, orderID, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusCancelled
	e.logger.Info("order cancelled", "order_id", orderID, "lines", len(order.Lines))
	return order, nil
}
