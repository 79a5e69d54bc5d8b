package query

import (
	"fmt"

	"github.com/shipdrop/backend/internal/inventory/domain"
)

// GetStatsQuery represents the query for inventory statistics
type GetStatsQuery struct{}

// Stats summarizes the inventory for the dashboard header cards
type Stats struct {
	TotalProducts int64 `json:"total_products"`
	InStock       int64 `json:"in_stock"`
	LowStock      int64 `json:"low_stock"`
	OutOfStock    int64 `json:"out_of_stock"`
}

// GetStatsHandler handles the stats query
type GetStatsHandler struct {
	repo      domain.ProductRepository
	threshold int
}

// NewGetStatsHandler creates a new stats handler
func NewGetStatsHandler(repo domain.ProductRepository, lowStockThreshold int) *GetStatsHandler {
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}
	return &GetStatsHandler{repo: repo, threshold: lowStockThreshold}
}

// Handle executes the stats query
func (h *GetStatsHandler) Handle(GetStatsQuery) (*Stats, error) {
	products, err := h.repo.FindAll(domain.Filter{Threshold: h.threshold})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	stats := &Stats{TotalProducts: int64(len(products))}
	for i := range products {
		switch domain.StockStatus(products[i].Stock, h.threshold) {
		case domain.StatusOutOfStock:
			stats.OutOfStock++
		case domain.StatusLowStock:
			stats.LowStock++
		default:
			stats.InStock++
		}
	}
	return stats, nil
}
