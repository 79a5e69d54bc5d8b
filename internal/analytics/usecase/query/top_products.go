package query

import (
	"context"
	"fmt"
	"sort"

	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// DefaultTopProductsLimit bounds the leaderboard size when none is given
const DefaultTopProductsLimit = 5

// TopProduct is one leaderboard row
type TopProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// TopProductsHandler ranks products by units sold across non-failed orders
type TopProductsHandler struct {
	orders orderdomain.OrderRepository
}

// NewTopProductsHandler creates a new top products handler
func NewTopProductsHandler(orders orderdomain.OrderRepository) *TopProductsHandler {
	return &TopProductsHandler{orders: orders}
}

// Handle executes the top products query. Ties break by product ID
// ascending so the ranking is stable.
func (h *TopProductsHandler) Handle(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit < 0 {
		return nil, apperrors.Validationf("limit must not be negative")
	}
	if limit == 0 {
		limit = DefaultTopProductsLimit
	}

	orders, err := h.orders.FindAll(orderdomain.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	totals := make(map[uint]*TopProduct)
	for i := range orders {
		if orders[i].Status == orderdomain.StatusFailed {
			continue
		}
		for _, item := range orders[i].Items {
			row, ok := totals[item.ProductID]
			if !ok {
				row = &TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				totals[item.ProductID] = row
			}
			row.UnitsSold += item.Quantity
			row.Revenue += item.UnitPrice * float64(item.Quantity)
		}
	}

	ranked := make([]TopProduct, 0, len(totals))
	for _, row := range totals {
		ranked = append(ranked, *row)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UnitsSold != ranked[j].UnitsSold {
			return ranked[i].UnitsSold > ranked[j].UnitsSold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
