package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
	"github.com/Lucifer-cyber007/MINI-ERP/internal/engine"
	"github.com/Lucifer-cyber007/MINI-ERP/internal/httputil"
	"github.com/Lucifer-cyber007/MINI-ERP/internal/messaging"
)

type Handler struct {
	engine   *engine.Engine
	repo     *OrderRepository
	producer *messaging.Producer
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(eng *engine.Engine, repo *OrderRepository, producer *messaging.Producer, logger *slog.Logger) *Handler {
	return &Handler{
		engine:   eng,
		repo:     repo,
		producer: producer,
		validate: validator.New(),
		logger:   logger,
	}
}

type orderLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	Lines      []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": httputil.FormatValidationError(err),
		})
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order, err := h.engine.CreateOrder(r.Context(), req.CustomerID, lines)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if h.producer != nil {
		event := domain.OrderCreatedEvent{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			Lines:       order.Lines,
			TotalAmount: order.TotalAmount,
			Timestamp:   order.OrderDate,
		}
		if err := h.producer.Publish(r.Context(), domain.TopicOrderCreated, order.ID, event); err != nil {
			h.logger.Error("failed to publish order created event", "error", err, "order_id", order.ID)
		}
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("orders listed", "count", len(orders))
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.engine.ConfirmOrder(r.Context(), id)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if h.producer != nil {
		event := domain.OrderConfirmedEvent{OrderID: order.ID, Timestamp: time.Now().UTC()}
		if err := h.producer.Publish(r.Context(), domain.TopicOrderConfirmed, order.ID, event); err != nil {
			h.logger.Error("failed to publish order confirmed event", "error", err, "order_id", order.ID)
		}
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.engine.CancelOrder(r.Context(), id)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if h.producer != nil {
		event := domain.OrderCancelledEvent{OrderID: order.ID, Timestamp: time.Now().UTC()}
		if err := h.producer.Publish(r.Context(), domain.TopicOrderCancelled, order.ID, event); err != nil {
			h.logger.Error("failed to publish order cancelled event", "error", err, "order_id", order.ID)
		}
	}

	h.writeJSON(w, http.StatusOK, order)
}

// writeEngineError maps the engine's error taxonomy onto HTTP status
// codes. Storage failures fall through to 500 untouched.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		h.writeJSON(w, http.StatusConflict, map[string]any{
			"error":      stockErr.Error(),
			"product_id": stockErr.ProductID,
		})
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("order operation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
