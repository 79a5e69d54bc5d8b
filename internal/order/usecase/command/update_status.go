package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// MarkShippedCommand moves a processing order to shipped with manually
// entered tracking details
type MarkShippedCommand struct {
	ID                string
	TrackingNumber    string
	EstimatedDelivery *time.Time
}

// MarkShippedHandler handles manual shipment confirmation
type MarkShippedHandler struct {
	orders domain.OrderRepository
	events EventPublisher
}

// NewMarkShippedHandler creates a new mark shipped handler
func NewMarkShippedHandler(orders domain.OrderRepository, events EventPublisher) *MarkShippedHandler {
	return &MarkShippedHandler{orders: orders, events: events}
}

// Handle executes the mark shipped command
func (h *MarkShippedHandler) Handle(ctx context.Context, cmd MarkShippedCommand) (*domain.Order, error) {
	if cmd.ID == "" {
		return nil, apperrors.Validationf("order id is required")
	}

	order, err := findOrder(h.orders, cmd.ID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.TransitionTo(domain.StatusShipped); err != nil {
		return nil, err
	}
	order.TrackingNumber = cmd.TrackingNumber
	order.EstimatedDelivery = cmd.EstimatedDelivery

	if err := h.orders.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	publishStatusChange(ctx, h.events, order.ID, from, order.Status)
	return order, nil
}

// MarkDeliveredCommand moves a shipped order to delivered
type MarkDeliveredCommand struct {
	ID string
}

// MarkDeliveredHandler handles delivery confirmation
type MarkDeliveredHandler struct {
	orders domain.OrderRepository
	events EventPublisher
}

// NewMarkDeliveredHandler creates a new mark delivered handler
func NewMarkDeliveredHandler(orders domain.OrderRepository, events EventPublisher) *MarkDeliveredHandler {
	return &MarkDeliveredHandler{orders: orders, events: events}
}

// Handle executes the mark delivered command
func (h *MarkDeliveredHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*domain.Order, error) {
	if cmd.ID == "" {
		return nil, apperrors.Validationf("order id is required")
	}

	order, err := findOrder(h.orders, cmd.ID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.TransitionTo(domain.StatusDelivered); err != nil {
		return nil, err
	}

	if err := h.orders.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	publishStatusChange(ctx, h.events, order.ID, from, order.Status)
	return order, nil
}

// MarkFailedCommand moves a processing or shipped order to failed
type MarkFailedCommand struct {
	ID string
}

// MarkFailedHandler handles fulfillment failure
type MarkFailedHandler struct {
	orders domain.OrderRepository
	events EventPublisher
}

// NewMarkFailedHandler creates a new mark failed handler
func NewMarkFailedHandler(orders domain.OrderRepository, events EventPublisher) *MarkFailedHandler {
	return &MarkFailedHandler{orders: orders, events: events}
}

// Handle executes the mark failed command
func (h *MarkFailedHandler) Handle(ctx context.Context, cmd MarkFailedCommand) (*domain.Order, error) {
	if cmd.ID == "" {
		return nil, apperrors.Validationf("order id is required")
	}

	order, err := findOrder(h.orders, cmd.ID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.TransitionTo(domain.StatusFailed); err != nil {
		return nil, err
	}

	if err := h.orders.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	publishStatusChange(ctx, h.events, order.ID, from, order.Status)
	return order, nil
}

// findOrder maps a missing row to a not-found error; anything else
// (connection failures, timeouts) stays an internal error.
func findOrder(orders domain.OrderRepository, id string) (*domain.Order, error) {
	order, err := orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("order %s not found", id)
		}
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return order, nil
}

func publishStatusChange(ctx context.Context, events EventPublisher, id, from, to string) {
	if events == nil {
		return
	}
	if err := events.OrderStatusChanged(ctx, id, from, to); err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", id).Msg("Failed to publish order.status_changed event")
	}
}
