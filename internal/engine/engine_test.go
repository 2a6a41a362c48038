package engine

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
)

type fakeOrderStore struct {
	created []*domain.Order
}

func (s *fakeOrderStore) Create(_ context.Context, order *domain.Order) error {
	order.ID = "order-1"
	s.created = append(s.created, order)
	return nil
}

func (s *fakeOrderStore) GetForUpdate(context.Context, *sql.Tx, string) (*domain.Order, error) {
	return nil, nil
}

func (s *fakeOrderStore) SetStatus(context.Context, *sql.Tx, string, domain.OrderStatus) error {
	return nil
}

type fakeCatalogStore struct {
	products map[string]*domain.Product
	adjusted [][]domain.StockAdjustment
}

func (s *fakeCatalogStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	return s.products[id], nil
}

func (s *fakeCatalogStore) TryAdjustStock(_ context.Context, _ *sql.Tx, adjustments []domain.StockAdjustment) error {
	s.adjusted = append(s.adjusted, adjustments)
	return nil
}

type fakeCustomerStore struct {
	customers map[string]*domain.Customer
}

func (s *fakeCustomerStore) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	return s.customers[id], nil
}

func newTestEngine() (*Engine, *fakeOrderStore, *fakeCatalogStore) {
	orderStore := &fakeOrderStore{}
	catalogStore := &fakeCatalogStore{products: map[string]*domain.Product{
		"prod-1": {ID: "prod-1", Name: "Widget", Price: decimal.RequireFromString("10.00"), StockQuantity: 5, IsActive: true},
		"prod-2": {ID: "prod-2", Name: "Gadget", Price: decimal.RequireFromString("9.99"), StockQuantity: 3, IsActive: true},
		"prod-3": {ID: "prod-3", Name: "Retired", Price: decimal.RequireFromString("1.00"), StockQuantity: 0, IsActive: false},
	}}
	customerStore := &fakeCustomerStore{customers: map[string]*domain.Customer{
		"cust-1": {ID: "cust-1", Name: "Ada"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, orderStore, catalogStore, customerStore, logger), orderStore, catalogStore
}

func TestEngine_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates draft order without touching stock", func(t *testing.T) {
		eng, orderStore, catalogStore := newTestEngine()

		order, err := eng.CreateOrder(ctx, "cust-1", []domain.OrderLine{
			{ProductID: "prod-2", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
			{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if order.Status != domain.OrderStatusDraft {
			t.Errorf("expected status %s, got %s", domain.OrderStatusDraft, order.Status)
		}
		if want := decimal.RequireFromString("24.98"); !order.TotalAmount.Equal(want) {
			t.Errorf("expected total %s, got %s", want, order.TotalAmount)
		}
		if len(orderStore.created) != 1 {
			t.Fatalf("expected 1 persisted order, got %d", len(orderStore.created))
		}
		if order.Lines[0].ProductID != "prod-2" {
			t.Errorf("expected line order preserved, got %s first", order.Lines[0].ProductID)
		}
		if len(catalogStore.adjusted) != 0 {
			t.Errorf("expected no stock adjustment at creation, got %d", len(catalogStore.adjusted))
		}
	})

	t.Run("keeps caller's unit price over catalog price", func(t *testing.T) {
		eng, orderStore, _ := newTestEngine()

		order, err := eng.CreateOrder(ctx, "cust-1", []domain.OrderLine{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("7.50")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := decimal.RequireFromString("7.50"); !order.TotalAmount.Equal(want) {
			t.Errorf("expected total %s, got %s", want, order.TotalAmount)
		}
		if !orderStore.created[0].Lines[0].UnitPrice.Equal(decimal.RequireFromString("7.50")) {
			t.Errorf("expected persisted unit price 7.50, got %s", orderStore.created[0].Lines[0].UnitPrice)
		}
	})

	t.Run("rejects empty line list", func(t *testing.T) {
		eng, _, _ := newTestEngine()

		_, err := eng.CreateOrder(ctx, "cust-1", nil)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		eng, _, _ := newTestEngine()

		_, err := eng.CreateOrder(ctx, "cust-1", []domain.OrderLine{
			{ProductID: "prod-1", Quantity: 0, UnitPrice: decimal.RequireFromString("1.00")},
		})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		eng, _, _ := newTestEngine()

		_, err := eng.CreateOrder(ctx, "cust-1", []domain.OrderLine{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("-0.01")},
		})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		eng, _, _ := newTestEngine()

		_, err := eng.CreateOrder(ctx, "nobody", []domain.OrderLine{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")},
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		eng, _, _ := newTestEngine()

		_, err := eng.CreateOrder(ctx, "cust-1", []domain.OrderLine{
			{ProductID: "missing", Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")},
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		eng, _, _ := newTestEngine()

		_, err := eng.CreateOrder(ctx, "cust-1", []domain.OrderLine{
			{ProductID: "prod-3", Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")},
		})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("expected ErrInvalidState, got %v", err)
		}
	})
}
