package query

import (
	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles the get product query
type GetProductHandler struct {
	repo      domain.ProductRepository
	threshold int
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository, lowStockThreshold int) *GetProductHandler {
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}
	return &GetProductHandler{repo: repo, threshold: lowStockThreshold}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	product, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("product %d not found", q.ID)
	}
	product.Refresh(h.threshold)
	return product, nil
}
