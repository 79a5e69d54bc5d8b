package command

import (
	"context"

	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// FulfillOrderCommand represents the command to fulfill a pending order
type FulfillOrderCommand struct {
	ID string
}

// FulfillOrderHandler handles order fulfillment. Stock decrement and the
// status move happen in one repository transaction.
type FulfillOrderHandler struct {
	orders domain.OrderRepository
	events EventPublisher
}

// NewFulfillOrderHandler creates a new fulfill order handler
func NewFulfillOrderHandler(orders domain.OrderRepository, events EventPublisher) *FulfillOrderHandler {
	return &FulfillOrderHandler{orders: orders, events: events}
}

// Handle executes the fulfill order command
func (h *FulfillOrderHandler) Handle(ctx context.Context, cmd FulfillOrderCommand) (*domain.Order, error) {
	if cmd.ID == "" {
		return nil, apperrors.Validationf("order id is required")
	}

	order, err := h.orders.Fulfill(cmd.ID)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		if err := h.events.OrderStatusChanged(ctx, order.ID, domain.StatusPending, order.Status); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", order.ID).Msg("Failed to publish order.status_changed event")
		}
	}

	logger.Info(ctx).Str("order_id", order.ID).Msg("Order fulfilled")
	return order, nil
}
