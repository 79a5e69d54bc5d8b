package query

import (
	"fmt"

	"github.com/shipdrop/backend/internal/inventory/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Text     string
	Category string
	Status   string
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	repo      domain.ProductRepository
	threshold int
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, lowStockThreshold int) *ListProductsHandler {
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}
	return &ListProductsHandler{repo: repo, threshold: lowStockThreshold}
}

// Handle executes the list products query. Results are in insertion order
// with the derived status populated.
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(domain.Filter{
		Text:      q.Text,
		Category:  q.Category,
		Status:    q.Status,
		Threshold: h.threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	for i := range products {
		products[i].Refresh(h.threshold)
	}
	return products, nil
}
