package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uuid.New().String()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, stock_quantity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, product.ID, product.Name, product.Price, product.StockQuantity, product.IsActive, now)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product := &domain.Product{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, stock_quantity, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(&product.ID, &product.Name, &product.Price, &product.StockQuantity,
		&product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, stock_quantity, is_active, created_at, updated_at
		FROM products
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.StockQuantity,
			&product.IsActive, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// TryAdjustStock applies a batch of signed stock deltas inside the
// caller's transaction, all-or-nothing. The verify phase row-locks
// every product in sorted id order and checks the resulting quantity
// against the zero floor; only then does the apply phase mutate.
// An error return means no adjustment commits.
func (r *ProductRepository) TryAdjustStock(ctx context.Context, tx *sql.Tx, adjustments []domain.StockAdjustment) error {
	merged := MergeAdjustments(adjustments)

	for _, adj := range merged {
		var name string
		var quantity int
		err := tx.QueryRowContext(ctx, `
			SELECT name, stock_quantity
			FROM products
			WHERE id = $1
			FOR UPDATE
		`, adj.ProductID).Scan(&name, &quantity)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("product %s: %w", adj.ProductID, domain.ErrNotFound)
			}
			return err
		}

		if quantity+adj.Delta < 0 {
			return &domain.InsufficientStockError{
				ProductID: adj.ProductID,
				Name:      name,
				Available: quantity,
				Requested: -adj.Delta,
			}
		}
	}

	for _, adj := range merged {
		_, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity + $2, updated_at = NOW()
			WHERE id = $1
		`, adj.ProductID, adj.Delta)
		if err != nil {
			return err
		}
	}

	return nil
}
