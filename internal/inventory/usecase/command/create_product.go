package command

import (
	"fmt"
	"time"

	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name         string
	SKU          string
	ImageURL     string
	Price        float64
	Cost         float64
	Stock        int
	WholesalerID uint
	Category     string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if cmd.SKU == "" {
		return nil, apperrors.Validationf("sku is required")
	}
	if cmd.Price < 0 {
		return nil, apperrors.Validationf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, apperrors.Validationf("stock cannot be negative")
	}

	if existing, _ := h.repo.FindBySKU(cmd.SKU); existing != nil {
		return nil, apperrors.Conflictf("sku %q already exists", cmd.SKU)
	}

	product := &domain.Product{
		Name:         cmd.Name,
		SKU:          cmd.SKU,
		ImageURL:     cmd.ImageURL,
		Price:        cmd.Price,
		Cost:         cmd.Cost,
		Stock:        cmd.Stock,
		WholesalerID: cmd.WholesalerID,
		Category:     cmd.Category,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product.Refresh(domain.DefaultLowStockThreshold)
	return product, nil
}
