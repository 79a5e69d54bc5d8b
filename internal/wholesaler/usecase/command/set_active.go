package command

import (
	"fmt"
	"time"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// SetActiveCommand toggles whether a wholesaler is eligible for sync and
// order routing. In-flight orders already routed to it are unaffected.
type SetActiveCommand struct {
	ID     uint
	Active bool
}

// SetActiveHandler handles the activation toggle
type SetActiveHandler struct {
	repo domain.WholesalerRepository
}

// NewSetActiveHandler creates a new set active handler
func NewSetActiveHandler(repo domain.WholesalerRepository) *SetActiveHandler {
	return &SetActiveHandler{repo: repo}
}

// Handle executes the set active command
func (h *SetActiveHandler) Handle(cmd SetActiveCommand) (*domain.Wholesaler, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid wholesaler id")
	}

	wholesaler, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("wholesaler %d not found", cmd.ID)
	}

	wholesaler.Active = cmd.Active
	wholesaler.UpdatedAt = time.Now()

	if err := h.repo.Update(wholesaler); err != nil {
		return nil, fmt.Errorf("failed to update wholesaler: %w", err)
	}

	return wholesaler, nil
}
