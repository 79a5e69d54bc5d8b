package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/order/domain"
	wholesalerdomain "github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// EventPublisher emits order lifecycle events. Publishing is best-effort;
// failures are logged and never fail the command.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, orderID, from, to string) error
}

// CreateOrderItem is one requested line of a new order
type CreateOrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreateOrderCommand represents the command to create an order
type CreateOrderCommand struct {
	CustomerName string            `json:"customer_name"`
	WholesalerID uint              `json:"wholesaler_id"`
	Items        []CreateOrderItem `json:"items"`
}

// CreateOrderHandler handles order creation
type CreateOrderHandler struct {
	orders      domain.OrderRepository
	products    inventorydomain.ProductRepository
	wholesalers wholesalerdomain.WholesalerRepository
	events      EventPublisher
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(
	orders domain.OrderRepository,
	products inventorydomain.ProductRepository,
	wholesalers wholesalerdomain.WholesalerRepository,
	events EventPublisher,
) *CreateOrderHandler {
	return &CreateOrderHandler{
		orders:      orders,
		products:    products,
		wholesalers: wholesalers,
		events:      events,
	}
}

// newOrderID builds a short display ID like ORD-1A2B3C4D
func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Handle executes the create order command. Unit prices are snapshotted
// from the catalog at creation time.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if strings.TrimSpace(cmd.CustomerName) == "" {
		return nil, apperrors.Validationf("customer name is required")
	}
	if len(cmd.Items) == 0 {
		return nil, apperrors.Validationf("order must contain at least one item")
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.Validationf("quantity must be positive for product %d", item.ProductID)
		}
	}

	wholesaler, err := h.wholesalers.FindByID(cmd.WholesalerID)
	if err != nil {
		return nil, apperrors.Conflictf("wholesaler %d is not available", cmd.WholesalerID)
	}
	if !wholesaler.Active {
		return nil, apperrors.Conflictf("wholesaler %s is inactive", wholesaler.Name)
	}

	order := &domain.Order{
		ID:           newOrderID(),
		CustomerName: strings.TrimSpace(cmd.CustomerName),
		PlacedAt:     time.Now(),
		Status:       domain.StatusPending,
		WholesalerID: cmd.WholesalerID,
	}

	for _, item := range cmd.Items {
		product, err := h.products.FindByID(item.ProductID)
		if err != nil {
			return nil, apperrors.Validationf("unknown product %d", item.ProductID)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			SKU:         product.SKU,
			UnitPrice:   product.Price,
			UnitCost:    product.Cost,
			Quantity:    item.Quantity,
		})
		order.TotalAmount += product.Price * float64(item.Quantity)
	}

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if h.events != nil {
		if err := h.events.OrderCreated(ctx, order); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", order.ID).Msg("Failed to publish order.created event")
		}
	}

	logger.Info(ctx).
		Str("order_id", order.ID).
		Uint("wholesaler_id", order.WholesalerID).
		Float64("total", order.TotalAmount).
		Msg("Order created")

	return order, nil
}
