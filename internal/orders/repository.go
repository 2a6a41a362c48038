package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and its lines in one transaction. Line
// position records insertion order so reads and stock adjustment see
// the lines exactly as the caller supplied them.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()
	order.OrderDate = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales_orders (id, customer_id, status, total_amount, order_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, order.ID, order.CustomerID, order.Status, order.TotalAmount, order.OrderDate)
	if err != nil {
		return err
	}

	for i := range order.Lines {
		order.Lines[i].ID = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales_order_lines (id, order_id, product_id, position, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, order.Lines[i].ID, order.ID, order.Lines[i].ProductID, i,
			order.Lines[i].Quantity, order.Lines[i].UnitPrice, order.Lines[i].LineTotal)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, status, total_amount, order_date
		FROM sales_orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.Status, &order.TotalAmount, &order.OrderDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	order.Lines, err = r.loadLines(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetForUpdate reads the order inside the given transaction with a
// row lock on the order itself, so concurrent confirm/cancel calls on
// the same order serialize on this read.
func (r *OrderRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := tx.QueryRowContext(ctx, `
		SELECT id, customer_id, status, total_amount, order_date
		FROM sales_orders
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&order.ID, &order.CustomerID, &order.Status, &order.TotalAmount, &order.OrderDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	order.Lines, err = r.loadLines(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// SetStatus flips the order status inside the engine's transaction.
// It must only be reached through the lifecycle engine, which checks
// the transition first.
func (r *OrderRepository) SetStatus(ctx context.Context, tx *sql.Tx, id string, status domain.OrderStatus) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE sales_orders SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, status, total_amount, order_date
		FROM sales_orders
		ORDER BY order_date DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.Status,
			&order.TotalAmount, &order.OrderDate); err != nil {
			return nil, err
		}
		order.Lines = []domain.OrderLine{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, id, product_id, quantity, unit_price, line_total
		FROM sales_order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = lineRows.Close() }()

	for lineRows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := lineRows.Scan(&orderID, &line.ID, &line.ProductID,
			&line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Lines = append(order.Lines, line)
	}

	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *OrderRepository) loadLines(ctx context.Context, q querier, orderID string) ([]domain.OrderLine, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, product_id, quantity, unit_price, line_total
		FROM sales_order_lines
		WHERE order_id = $1
		ORDER BY position
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.ProductID, &line.Quantity,
			&line.UnitPrice, &line.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
