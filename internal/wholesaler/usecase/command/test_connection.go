package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// TestConnectionCommand represents the command to test a wholesaler API
type TestConnectionCommand struct {
	ID uint
}

// TestResult is the outcome of a connection test
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TestConnectionHandler performs a round trip against the wholesaler API.
// It never writes wholesaler state; the caller decides whether to commit
// a status change.
type TestConnectionHandler struct {
	repo domain.WholesalerRepository
	api  domain.APIClient
}

// NewTestConnectionHandler creates a new test connection handler
func NewTestConnectionHandler(repo domain.WholesalerRepository, api domain.APIClient) *TestConnectionHandler {
	return &TestConnectionHandler{repo: repo, api: api}
}

// Handle executes the connection test
func (h *TestConnectionHandler) Handle(ctx context.Context, cmd TestConnectionCommand) (*TestResult, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validationf("invalid wholesaler id")
	}

	wholesaler, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("wholesaler %d not found", cmd.ID)
	}

	catalog, err := h.api.FetchCatalog(ctx, wholesaler)
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalService) {
			return &TestResult{
				Success: false,
				Message: fmt.Sprintf("Connection failed: %s. Please check your API credentials and try again.", err.Error()),
			}, nil
		}
		return nil, err
	}

	return &TestResult{
		Success: true,
		Message: fmt.Sprintf("Connection successful! API responded with %d products.", len(catalog)),
	}, nil
}
