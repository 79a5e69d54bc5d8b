package command

import (
	"fmt"
	"time"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// UpdateWholesalerCommand represents the operator editing a connection.
// Status is deliberately absent: only connection tests and sync attempts
// may change it.
type UpdateWholesalerCommand struct {
	ID          uint
	Name        string
	APIEndpoint string
	APIKey      string
}

// UpdateWholesalerHandler handles wholesaler edits
type UpdateWholesalerHandler struct {
	repo domain.WholesalerRepository
}

// NewUpdateWholesalerHandler creates a new update wholesaler handler
func NewUpdateWholesalerHandler(repo domain.WholesalerRepository) *UpdateWholesalerHandler {
	return &UpdateWholesalerHandler{repo: repo}
}

// Handle executes the update wholesaler command
func (h *UpdateWholesalerHandler) Handle(cmd UpdateWholesalerCommand) (*domain.Wholesaler, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid wholesaler id")
	}

	wholesaler, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("wholesaler %d not found", cmd.ID)
	}

	if cmd.Name != "" {
		wholesaler.Name = cmd.Name
	}
	if cmd.APIEndpoint != "" {
		wholesaler.APIEndpoint = cmd.APIEndpoint
	}
	if cmd.APIKey != "" {
		wholesaler.APIKey = cmd.APIKey
	}
	wholesaler.UpdatedAt = time.Now()

	if err := h.repo.Update(wholesaler); err != nil {
		return nil, fmt.Errorf("failed to update wholesaler: %w", err)
	}

	return wholesaler, nil
}
