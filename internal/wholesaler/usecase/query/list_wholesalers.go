package query

import (
	"fmt"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
)

// ListWholesalersQuery represents the query to list wholesalers
type ListWholesalersQuery struct {
	ActiveOnly bool
}

// ListWholesalersHandler handles the list wholesalers query
type ListWholesalersHandler struct {
	repo domain.WholesalerRepository
}

// NewListWholesalersHandler creates a new list wholesalers handler
func NewListWholesalersHandler(repo domain.WholesalerRepository) *ListWholesalersHandler {
	return &ListWholesalersHandler{repo: repo}
}

// Handle executes the list wholesalers query
func (h *ListWholesalersHandler) Handle(q ListWholesalersQuery) ([]domain.Wholesaler, error) {
	var (
		wholesalers []domain.Wholesaler
		err         error
	)
	if q.ActiveOnly {
		wholesalers, err = h.repo.FindActive()
	} else {
		wholesalers, err = h.repo.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list wholesalers: %w", err)
	}
	return wholesalers, nil
}
