package command

import (
	"fmt"
	"time"

	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	ID           uint
	Name         string
	SKU          string
	ImageURL     string
	Price        float64
	Cost         float64
	Stock        int
	WholesalerID uint
	Category     string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid product id")
	}
	if cmd.Name == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if cmd.Price < 0 {
		return nil, apperrors.Validationf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, apperrors.Validationf("stock cannot be negative")
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("product %d not found", cmd.ID)
	}

	if cmd.SKU != "" && cmd.SKU != product.SKU {
		if existing, _ := h.repo.FindBySKU(cmd.SKU); existing != nil {
			return nil, apperrors.Conflictf("sku %q already exists", cmd.SKU)
		}
		product.SKU = cmd.SKU
	}

	product.Name = cmd.Name
	product.ImageURL = cmd.ImageURL
	product.Price = cmd.Price
	product.Cost = cmd.Cost
	product.Stock = cmd.Stock
	product.Category = cmd.Category
	if cmd.WholesalerID != 0 {
		product.WholesalerID = cmd.WholesalerID
	}
	product.UpdatedAt = time.Now()

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	product.Refresh(domain.DefaultLowStockThreshold)
	return product, nil
}
