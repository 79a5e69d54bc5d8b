package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

type fakeOrderRepo struct {
	orders []domain.Order
}

func (r *fakeOrderRepo) Create(*domain.Order) error { return nil }

func (r *fakeOrderRepo) FindByID(id string) (*domain.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			copied := r.orders[i]
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeOrderRepo) FindAll(filter domain.Filter) ([]domain.Order, error) {
	var matched []domain.Order
	for _, o := range r.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		matched = append(matched, o)
	}
	return matched, nil
}

func (r *fakeOrderRepo) FindSince(time.Time) ([]domain.Order, error) { return r.orders, nil }
func (r *fakeOrderRepo) Update(*domain.Order) error                  { return nil }
func (r *fakeOrderRepo) UpdateStatus(string, string) error           { return nil }
func (r *fakeOrderRepo) CountOpenByWholesaler(uint) (int64, error)   { return 0, nil }

func (r *fakeOrderRepo) Fulfill(string) (*domain.Order, error) {
	return nil, errors.New("record not found")
}

func TestListOrdersAttachesProgress(t *testing.T) {
	repo := &fakeOrderRepo{orders: []domain.Order{
		{ID: "ORD-1", Status: domain.StatusPending},
		{ID: "ORD-2", Status: domain.StatusShipped},
		{ID: "ORD-3", Status: domain.StatusFailed},
	}}
	handler := NewListOrdersHandler(repo)

	views, err := handler.Handle(ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, 0, views[0].Progress)
	assert.Equal(t, 75, views[1].Progress)
	assert.Equal(t, 100, views[2].Progress)
}

func TestListOrdersPassesStatusFilter(t *testing.T) {
	repo := &fakeOrderRepo{orders: []domain.Order{
		{ID: "ORD-1", Status: domain.StatusPending},
		{ID: "ORD-2", Status: domain.StatusShipped},
	}}
	handler := NewListOrdersHandler(repo)

	views, err := handler.Handle(ListOrdersQuery{Status: domain.StatusShipped})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ORD-2", views[0].ID)
}

func TestGetOrder(t *testing.T) {
	repo := &fakeOrderRepo{orders: []domain.Order{
		{ID: "ORD-1", Status: domain.StatusProcessing},
	}}
	handler := NewGetOrderHandler(repo)

	view, err := handler.Handle("ORD-1")
	require.NoError(t, err)
	assert.Equal(t, 25, view.Progress)

	_, err = handler.Handle("ORD-404")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
