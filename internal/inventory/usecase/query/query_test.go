package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

type fakeRepo struct {
	products []domain.Product
}

func (r *fakeRepo) Create(*domain.Product) error { return nil }

func (r *fakeRepo) FindByID(id uint) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			copied := r.products[i]
			return &copied, nil
		}
	}
	return nil, apperrors.NotFoundf("product %d not found", id)
}

func (r *fakeRepo) FindBySKU(sku string) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].SKU == sku {
			copied := r.products[i]
			return &copied, nil
		}
	}
	return nil, apperrors.NotFoundf("product %s not found", sku)
}

// FindAll honors only the status filter; that is all these queries need
func (r *fakeRepo) FindAll(filter domain.Filter) ([]domain.Product, error) {
	threshold := filter.Threshold
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	var matched []domain.Product
	for _, p := range r.products {
		if filter.Status != "" && filter.Status != "all" &&
			domain.StockStatus(p.Stock, threshold) != filter.Status {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func (r *fakeRepo) FindByWholesaler(uint) ([]domain.Product, error) { return r.products, nil }
func (r *fakeRepo) Update(*domain.Product) error                    { return nil }
func (r *fakeRepo) Delete(uint) error                               { return nil }
func (r *fakeRepo) Count() (int64, error)                           { return int64(len(r.products)), nil }
func (r *fakeRepo) CountOutOfStock() (int64, error)                 { return 0, nil }
func (r *fakeRepo) UpdateStock(uint, int) error                     { return nil }

func catalog() *fakeRepo {
	return &fakeRepo{products: []domain.Product{
		{ID: 1, Name: "Wireless Mouse", SKU: "WM-100", Stock: 40},
		{ID: 2, Name: "USB-C Cable", SKU: "UC-200", Stock: 5},
		{ID: 3, Name: "Desk Lamp", SKU: "DL-300", Stock: 0},
	}}
}

func TestListProductsPopulatesStatus(t *testing.T) {
	handler := NewListProductsHandler(catalog(), 10)

	products, err := handler.Handle(ListProductsQuery{})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, domain.StatusInStock, products[0].Status)
	assert.Equal(t, domain.StatusLowStock, products[1].Status)
	assert.Equal(t, domain.StatusOutOfStock, products[2].Status)
}

func TestListProductsStatusFilter(t *testing.T) {
	handler := NewListProductsHandler(catalog(), 10)

	products, err := handler.Handle(ListProductsQuery{Status: domain.StatusLowStock})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "UC-200", products[0].SKU)
}

func TestGetProduct(t *testing.T) {
	handler := NewGetProductHandler(catalog(), 10)

	product, err := handler.Handle(GetProductQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLowStock, product.Status)

	_, err = handler.Handle(GetProductQuery{ID: 42})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetStats(t *testing.T) {
	handler := NewGetStatsHandler(catalog(), 10)

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.InStock)
	assert.Equal(t, int64(1), stats.LowStock)
	assert.Equal(t, int64(1), stats.OutOfStock)
}

func TestThresholdDefaultsWhenUnset(t *testing.T) {
	// Threshold 0 falls back to the default of 10
	handler := NewGetStatsHandler(catalog(), 0)

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.LowStock)
}
