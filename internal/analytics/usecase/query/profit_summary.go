package query

import (
	"context"
	"fmt"
	"time"

	orderdomain "github.com/shipdrop/backend/internal/order/domain"
)

// ProfitSummary holds per-window profit sums for the dashboard cards
type ProfitSummary struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// ProfitSummaryHandler computes profit over rolling windows ending now.
// Failed orders never count; orders whose items carry no cost contribute
// their full revenue as profit.
type ProfitSummaryHandler struct {
	orders orderdomain.OrderRepository
	now    func() time.Time
}

// NewProfitSummaryHandler creates a new profit summary handler
func NewProfitSummaryHandler(orders orderdomain.OrderRepository) *ProfitSummaryHandler {
	return &ProfitSummaryHandler{orders: orders, now: time.Now}
}

// orderProfit is the item-level margin of one order
func orderProfit(order *orderdomain.Order) float64 {
	var profit float64
	for _, item := range order.Items {
		profit += (item.UnitPrice - item.UnitCost) * float64(item.Quantity)
	}
	return profit
}

// Handle executes the profit summary query
func (h *ProfitSummaryHandler) Handle(ctx context.Context) (*ProfitSummary, error) {
	now := h.now()
	yearAgo := now.AddDate(-1, 0, 0)

	orders, err := h.orders.FindSince(yearAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	summary := &ProfitSummary{}
	for i := range orders {
		order := &orders[i]
		if order.Status == orderdomain.StatusFailed {
			continue
		}

		profit := orderProfit(order)
		summary.Yearly += profit
		if !order.PlacedAt.Before(monthAgo) {
			summary.Monthly += profit
		}
		if !order.PlacedAt.Before(weekAgo) {
			summary.Weekly += profit
		}
		if !order.PlacedAt.Before(dayAgo) {
			summary.Daily += profit
		}
	}

	return summary, nil
}
