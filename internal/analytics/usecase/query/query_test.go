package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

type fakeOrderRepo struct {
	orders []orderdomain.Order
}

func (r *fakeOrderRepo) Create(*orderdomain.Order) error { return nil }

func (r *fakeOrderRepo) FindByID(id string) (*orderdomain.Order, error) {
	return nil, apperrors.NotFoundf("order %s not found", id)
}

func (r *fakeOrderRepo) FindAll(orderdomain.Filter) ([]orderdomain.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) FindSince(t time.Time) ([]orderdomain.Order, error) {
	var since []orderdomain.Order
	for _, o := range r.orders {
		if !o.PlacedAt.Before(t) {
			since = append(since, o)
		}
	}
	return since, nil
}

func (r *fakeOrderRepo) Update(*orderdomain.Order) error          { return nil }
func (r *fakeOrderRepo) UpdateStatus(string, string) error        { return nil }
func (r *fakeOrderRepo) CountOpenByWholesaler(uint) (int64, error) { return 0, nil }

func (r *fakeOrderRepo) Fulfill(id string) (*orderdomain.Order, error) {
	return nil, apperrors.NotFoundf("order %s not found", id)
}

func itemsWithProfit(price, cost float64, qty int) []orderdomain.OrderItem {
	return []orderdomain.OrderItem{{ProductID: 1, UnitPrice: price, UnitCost: cost, Quantity: qty}}
}

func TestProfitSummaryWindows(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	repo := &fakeOrderRepo{orders: []orderdomain.Order{
		// 10 profit, inside every window
		{ID: "ORD-1", Status: orderdomain.StatusDelivered, PlacedAt: now.Add(-2 * time.Hour),
			Items: itemsWithProfit(15, 5, 1)},
		// 20 profit, this week but not today
		{ID: "ORD-2", Status: orderdomain.StatusShipped, PlacedAt: now.AddDate(0, 0, -3),
			Items: itemsWithProfit(25, 5, 1)},
		// 40 profit, this month but not this week
		{ID: "ORD-3", Status: orderdomain.StatusDelivered, PlacedAt: now.AddDate(0, 0, -20),
			Items: itemsWithProfit(45, 5, 1)},
		// 80 profit, this year but not this month
		{ID: "ORD-4", Status: orderdomain.StatusDelivered, PlacedAt: now.AddDate(0, -6, 0),
			Items: itemsWithProfit(85, 5, 1)},
		// failed orders never count
		{ID: "ORD-5", Status: orderdomain.StatusFailed, PlacedAt: now.Add(-time.Hour),
			Items: itemsWithProfit(1000, 0, 1)},
	}}

	handler := NewProfitSummaryHandler(repo)
	handler.now = func() time.Time { return now }

	summary, err := handler.Handle(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 10, summary.Daily, 0.001)
	assert.InDelta(t, 30, summary.Weekly, 0.001)
	assert.InDelta(t, 70, summary.Monthly, 0.001)
	assert.InDelta(t, 150, summary.Yearly, 0.001)
}

func TestProfitSummaryZeroCostCountsFullRevenue(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	repo := &fakeOrderRepo{orders: []orderdomain.Order{
		{ID: "ORD-1", Status: orderdomain.StatusPending, PlacedAt: now.Add(-time.Hour),
			Items: itemsWithProfit(30, 0, 2)},
	}}

	handler := NewProfitSummaryHandler(repo)
	handler.now = func() time.Time { return now }

	summary, err := handler.Handle(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 60, summary.Daily, 0.001)
}

func TestTopProductsRanksByUnitsSold(t *testing.T) {
	repo := &fakeOrderRepo{orders: []orderdomain.Order{
		{ID: "ORD-1", Status: orderdomain.StatusDelivered, Items: []orderdomain.OrderItem{
			{ProductID: 1, ProductName: "Mouse", UnitPrice: 10, Quantity: 3},
			{ProductID: 2, ProductName: "Cable", UnitPrice: 5, Quantity: 8},
		}},
		{ID: "ORD-2", Status: orderdomain.StatusShipped, Items: []orderdomain.OrderItem{
			{ProductID: 1, ProductName: "Mouse", UnitPrice: 10, Quantity: 2},
		}},
		{ID: "ORD-3", Status: orderdomain.StatusFailed, Items: []orderdomain.OrderItem{
			{ProductID: 3, ProductName: "Lamp", UnitPrice: 40, Quantity: 50},
		}},
	}}
	handler := NewTopProductsHandler(repo)

	top, err := handler.Handle(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, top, 2, "failed orders are excluded")
	assert.Equal(t, uint(2), top[0].ProductID)
	assert.Equal(t, 8, top[0].UnitsSold)
	assert.InDelta(t, 40, top[0].Revenue, 0.001)
	assert.Equal(t, uint(1), top[1].ProductID)
	assert.Equal(t, 5, top[1].UnitsSold)
	assert.InDelta(t, 50, top[1].Revenue, 0.001)
}

func TestTopProductsTieBreaksByProductID(t *testing.T) {
	repo := &fakeOrderRepo{orders: []orderdomain.Order{
		{ID: "ORD-1", Status: orderdomain.StatusDelivered, Items: []orderdomain.OrderItem{
			{ProductID: 7, ProductName: "B", UnitPrice: 1, Quantity: 4},
			{ProductID: 3, ProductName: "A", UnitPrice: 1, Quantity: 4},
		}},
	}}
	handler := NewTopProductsHandler(repo)

	top, err := handler.Handle(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, uint(3), top[0].ProductID)
	assert.Equal(t, uint(7), top[1].ProductID)
}

func TestTopProductsLimit(t *testing.T) {
	orders := make([]orderdomain.Order, 0, 8)
	for i := 1; i <= 8; i++ {
		orders = append(orders, orderdomain.Order{
			ID:     "ORD-" + string(rune('A'+i)),
			Status: orderdomain.StatusDelivered,
			Items: []orderdomain.OrderItem{
				{ProductID: uint(i), UnitPrice: 1, Quantity: i},
			},
		})
	}
	handler := NewTopProductsHandler(&fakeOrderRepo{orders: orders})

	top, err := handler.Handle(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, DefaultTopProductsLimit)
	assert.Equal(t, 8, top[0].UnitsSold)

	_, err = handler.Handle(context.Background(), -1)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestSalesTrendBuckets(t *testing.T) {
	repo := &fakeOrderRepo{orders: []orderdomain.Order{
		{ID: "ORD-1", Status: orderdomain.StatusDelivered, TotalAmount: 100,
			PlacedAt: time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "ORD-2", Status: orderdomain.StatusShipped, TotalAmount: 50,
			PlacedAt: time.Date(2026, 7, 10, 17, 0, 0, 0, time.UTC)},
		{ID: "ORD-3", Status: orderdomain.StatusDelivered, TotalAmount: 30,
			PlacedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "ORD-4", Status: orderdomain.StatusFailed, TotalAmount: 999,
			PlacedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
	}}
	handler := NewSalesTrendHandler(repo)

	byMonth, err := handler.Handle(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, byMonth, 2)
	assert.Equal(t, TrendPoint{Period: "2026-07", Revenue: 150, Orders: 2}, byMonth[0])
	assert.Equal(t, TrendPoint{Period: "2026-08", Revenue: 30, Orders: 1}, byMonth[1])

	byDay, err := handler.Handle(context.Background(), BucketDay)
	require.NoError(t, err)
	require.Len(t, byDay, 2)
	assert.Equal(t, "2026-07-10", byDay[0].Period)
	assert.Equal(t, 2, byDay[0].Orders)

	byWeek, err := handler.Handle(context.Background(), BucketWeek)
	require.NoError(t, err)
	require.Len(t, byWeek, 2)
	assert.Equal(t, "2026-W28", byWeek[0].Period)
}

func TestSalesTrendRejectsUnknownBucket(t *testing.T) {
	handler := NewSalesTrendHandler(&fakeOrderRepo{})

	_, err := handler.Handle(context.Background(), "quarter")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
