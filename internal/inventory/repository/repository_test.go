package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shipdrop/backend/internal/inventory/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))
	return db
}

func seedProducts(t *testing.T, repo *GormProductRepository) {
	t.Helper()
	products := []domain.Product{
		{Name: "Wireless Mouse", SKU: "WM-100", Category: "electronics", Price: 29.90, Cost: 12.00, Stock: 40},
		{Name: "USB-C Cable", SKU: "UC-200", Category: "electronics", Price: 9.90, Cost: 2.50, Stock: 5},
		{Name: "Desk Lamp", SKU: "DL-300", Category: "home", Price: 44.00, Cost: 18.00, Stock: 0},
		{Name: "Notebook Stand", SKU: "NS-400", Category: "office", Price: 59.00, Cost: 25.00, Stock: 12},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
}

func TestFindAllNoFilterReturnsInsertionOrder(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	seedProducts(t, repo)

	products, err := repo.FindAll(domain.Filter{})
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "WM-100", products[0].SKU)
	assert.Equal(t, "NS-400", products[3].SKU)
}

func TestFindAllTextFilterMatchesNameAndSKU(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	seedProducts(t, repo)

	byName, err := repo.FindAll(domain.Filter{Text: "mouse"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Wireless Mouse", byName[0].Name)

	bySKU, err := repo.FindAll(domain.Filter{Text: "uc-2"})
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "USB-C Cable", bySKU[0].Name)
}

func TestFindAllStatusFilterUsesThreshold(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	seedProducts(t, repo)

	out, err := repo.FindAll(domain.Filter{Status: domain.StatusOutOfStock})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "DL-300", out[0].SKU)

	low, err := repo.FindAll(domain.Filter{Status: domain.StatusLowStock})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "UC-200", low[0].SKU)

	// Raising the threshold pulls the 12-unit product into low stock
	low, err = repo.FindAll(domain.Filter{Status: domain.StatusLowStock, Threshold: 15})
	require.NoError(t, err)
	assert.Len(t, low, 2)

	in, err := repo.FindAll(domain.Filter{Status: domain.StatusInStock})
	require.NoError(t, err)
	assert.Len(t, in, 2)
}

func TestFindAllFiltersCompose(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	seedProducts(t, repo)

	products, err := repo.FindAll(domain.Filter{
		Category: "electronics",
		Status:   domain.StatusInStock,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "WM-100", products[0].SKU)

	products, err = repo.FindAll(domain.Filter{Category: "all", Status: "all"})
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestUpdateStock(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	seedProducts(t, repo)

	product, err := repo.FindBySKU("WM-100")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStock(product.ID, 0))

	updated, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	count, err := repo.CountOutOfStock()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFindByWholesaler(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))

	require.NoError(t, repo.Create(&domain.Product{Name: "A", SKU: "A-1", Price: 1, WholesalerID: 1}))
	require.NoError(t, repo.Create(&domain.Product{Name: "B", SKU: "B-1", Price: 1, WholesalerID: 2}))
	require.NoError(t, repo.Create(&domain.Product{Name: "C", SKU: "C-1", Price: 1, WholesalerID: 1}))

	products, err := repo.FindByWholesaler(1)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A-1", products[0].SKU)
	assert.Equal(t, "C-1", products[1].SKU)
}

func TestDeleteIsSoft(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	seedProducts(t, repo)

	product, err := repo.FindBySKU("DL-300")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(product.ID))

	_, err = repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
