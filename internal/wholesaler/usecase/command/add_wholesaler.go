package command

import (
	"fmt"
	"time"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// AddWholesalerCommand represents the command to register a wholesaler
type AddWholesalerCommand struct {
	Name        string
	APIEndpoint string
	APIKey      string
}

// AddWholesalerHandler handles wholesaler registration
type AddWholesalerHandler struct {
	repo domain.WholesalerRepository
}

// NewAddWholesalerHandler creates a new add wholesaler handler
func NewAddWholesalerHandler(repo domain.WholesalerRepository) *AddWholesalerHandler {
	return &AddWholesalerHandler{repo: repo}
}

// Handle executes the add wholesaler command
func (h *AddWholesalerHandler) Handle(cmd AddWholesalerCommand) (*domain.Wholesaler, error) {
	if cmd.Name == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if cmd.APIEndpoint == "" {
		return nil, apperrors.Validationf("api endpoint is required")
	}
	if cmd.APIKey == "" {
		return nil, apperrors.Validationf("api key is required")
	}

	wholesaler := &domain.Wholesaler{
		Name:         cmd.Name,
		APIEndpoint:  cmd.APIEndpoint,
		APIKey:       cmd.APIKey,
		Status:       domain.StatusConnected,
		LastSyncAt:   time.Now(),
		ProductCount: 0,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.repo.Create(wholesaler); err != nil {
		return nil, fmt.Errorf("failed to create wholesaler: %w", err)
	}

	return wholesaler, nil
}
