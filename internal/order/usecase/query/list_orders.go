package query

import (
	"fmt"

	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	Text   string
	Status string
}

// OrderView is an order decorated with its delivery progress percent
type OrderView struct {
	domain.Order
	Progress int `json:"progress"`
}

// ListOrdersHandler handles the list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]OrderView, error) {
	orders, err := h.repo.FindAll(domain.Filter{Text: q.Text, Status: q.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, OrderView{Order: order, Progress: domain.Progress(order.Status)})
	}
	return views, nil
}

// GetOrderHandler handles the get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(id string) (*OrderView, error) {
	order, err := h.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.NotFoundf("order %s not found", id)
	}
	return &OrderView{Order: *order, Progress: domain.Progress(order.Status)}, nil
}
