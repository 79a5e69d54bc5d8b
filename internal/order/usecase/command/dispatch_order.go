package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/order/domain"
	wholesalerdomain "github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// DispatchOrderCommand represents the command to dispatch a processing
// order to its wholesaler
type DispatchOrderCommand struct {
	ID string
}

// DispatchOrderHandler pushes an order to the wholesaler API and records
// the returned tracking details
type DispatchOrderHandler struct {
	orders      domain.OrderRepository
	wholesalers wholesalerdomain.WholesalerRepository
	api         wholesalerdomain.APIClient
	events      EventPublisher
}

// NewDispatchOrderHandler creates a new dispatch order handler
func NewDispatchOrderHandler(
	orders domain.OrderRepository,
	wholesalers wholesalerdomain.WholesalerRepository,
	api wholesalerdomain.APIClient,
	events EventPublisher,
) *DispatchOrderHandler {
	return &DispatchOrderHandler{
		orders:      orders,
		wholesalers: wholesalers,
		api:         api,
		events:      events,
	}
}

// Handle executes the dispatch. On push failure the order keeps its
// processing status.
func (h *DispatchOrderHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (*domain.Order, error) {
	if cmd.ID == "" {
		return nil, apperrors.Validationf("order id is required")
	}

	order, err := findOrder(h.orders, cmd.ID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.StatusProcessing {
		return nil, apperrors.New(apperrors.CodeInvalidTransition,
			"cannot dispatch order "+order.ID+" in status "+order.Status)
	}

	wholesaler, err := h.wholesalers.FindByID(order.WholesalerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("wholesaler %d not found", order.WholesalerID)
		}
		return nil, fmt.Errorf("failed to load wholesaler %d: %w", order.WholesalerID, err)
	}

	req := wholesalerdomain.OrderRequest{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, wholesalerdomain.OrderItemRequest{
			SKU:      item.SKU,
			Quantity: item.Quantity,
		})
	}

	confirmation, err := h.api.PushOrder(ctx, wholesaler, req)
	if err != nil {
		logger.Error(ctx).Err(err).
			Str("order_id", order.ID).
			Uint("wholesaler_id", wholesaler.ID).
			Msg("Wholesaler rejected dispatch")
		return nil, err
	}

	from := order.Status
	if err := order.TransitionTo(domain.StatusShipped); err != nil {
		return nil, err
	}
	order.TrackingNumber = confirmation.TrackingNumber
	if !confirmation.EstimatedDelivery.IsZero() {
		eta := confirmation.EstimatedDelivery
		order.EstimatedDelivery = &eta
	}

	if err := h.orders.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if h.events != nil {
		if err := h.events.OrderStatusChanged(ctx, order.ID, from, order.Status); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", order.ID).Msg("Failed to publish order.status_changed event")
		}
	}

	logger.Info(ctx).
		Str("order_id", order.ID).
		Str("tracking_number", order.TrackingNumber).
		Msg("Order dispatched")

	return order, nil
}
