package command

import (
	"fmt"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// DeleteWholesalerCommand represents the command to delete a wholesaler
type DeleteWholesalerCommand struct {
	ID uint
}

// DeleteWholesalerHandler handles wholesaler deletion
type DeleteWholesalerHandler struct {
	repo   domain.WholesalerRepository
	orders domain.OpenOrderCounter
}

// NewDeleteWholesalerHandler creates a new delete wholesaler handler
func NewDeleteWholesalerHandler(repo domain.WholesalerRepository, orders domain.OpenOrderCounter) *DeleteWholesalerHandler {
	return &DeleteWholesalerHandler{repo: repo, orders: orders}
}

// Handle executes the delete wholesaler command. Deletion is refused
// while any order in a non-terminal state still references the wholesaler.
func (h *DeleteWholesalerHandler) Handle(cmd DeleteWholesalerCommand) error {
	if cmd.ID == 0 {
		return apperrors.Validationf("invalid wholesaler id")
	}

	if _, err := h.repo.FindByID(cmd.ID); err != nil {
		return apperrors.NotFoundf("wholesaler %d not found", cmd.ID)
	}

	open, err := h.orders.CountOpenByWholesaler(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to count open orders: %w", err)
	}
	if open > 0 {
		return apperrors.Conflictf("wholesaler %d still has %d open orders", cmd.ID, open)
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete wholesaler: %w", err)
	}

	return nil
}
