package command

import (
	"fmt"

	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// UpdateStockCommand represents the command to update product stock
type UpdateStockCommand struct {
	ProductID uint
	Stock     int
}

// UpdateStockHandler handles stock update command
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the update stock command. The derived status follows
// the stock level automatically on the next read.
func (h *UpdateStockHandler) Handle(cmd UpdateStockCommand) error {
	if cmd.ProductID == 0 {
		return apperrors.Validationf("invalid product id")
	}
	if cmd.Stock < 0 {
		return apperrors.Validationf("stock cannot be negative")
	}

	if _, err := h.repo.FindByID(cmd.ProductID); err != nil {
		return apperrors.NotFoundf("product %d not found", cmd.ProductID)
	}

	if err := h.repo.UpdateStock(cmd.ProductID, cmd.Stock); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	return nil
}
