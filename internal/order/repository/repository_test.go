package repository

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&inventorydomain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	))
	return db
}

// newFileTestDB backs the database with a file. In-memory sqlite gives
// every pooled connection its own database, so tests that need two real
// connections at once cannot use it.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "orders.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&inventorydomain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, stock int) *inventorydomain.Product {
	t.Helper()
	p := &inventorydomain.Product{Name: sku, SKU: sku, Price: 20, Cost: 8, Stock: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedOrder(t *testing.T, repo *GormOrderRepository, id, status string, items []domain.OrderItem) *domain.Order {
	t.Helper()
	order := &domain.Order{
		ID:           id,
		CustomerName: "Jamie Doe",
		PlacedAt:     time.Now(),
		Items:        items,
		TotalAmount:  100,
		Status:       status,
		WholesalerID: 1,
	}
	require.NoError(t, repo.Create(order))
	return order
}

func TestFulfillDecrementsStockAndClaimsOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	p1 := seedProduct(t, db, "SKU-1", 10)
	p2 := seedProduct(t, db, "SKU-2", 3)
	seedOrder(t, repo, "ORD-A1", domain.StatusPending, []domain.OrderItem{
		{ProductID: p1.ID, SKU: "SKU-1", UnitPrice: 20, Quantity: 4},
		{ProductID: p2.ID, SKU: "SKU-2", UnitPrice: 20, Quantity: 3},
	})

	fulfilled, err := repo.Fulfill("ORD-A1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, fulfilled.Status)

	var stock1, stock2 int
	require.NoError(t, db.Model(&inventorydomain.Product{}).Where("id = ?", p1.ID).Select("stock").Scan(&stock1).Error)
	require.NoError(t, db.Model(&inventorydomain.Product{}).Where("id = ?", p2.ID).Select("stock").Scan(&stock2).Error)
	assert.Equal(t, 6, stock1)
	assert.Equal(t, 0, stock2)
}

func TestFulfillInsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	p1 := seedProduct(t, db, "SKU-1", 10)
	p2 := seedProduct(t, db, "SKU-2", 1)
	seedOrder(t, repo, "ORD-B1", domain.StatusPending, []domain.OrderItem{
		{ProductID: p1.ID, SKU: "SKU-1", UnitPrice: 20, Quantity: 4},
		{ProductID: p2.ID, SKU: "SKU-2", UnitPrice: 20, Quantity: 2},
	})

	_, err := repo.Fulfill("ORD-B1")
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))

	// All-or-nothing: the first item's decrement must be undone and the
	// order must still be pending.
	var stock1 int
	require.NoError(t, db.Model(&inventorydomain.Product{}).Where("id = ?", p1.ID).Select("stock").Scan(&stock1).Error)
	assert.Equal(t, 10, stock1)

	order, err := repo.FindByID("ORD-B1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
}

func TestFulfillTwiceRejectsSecondAttempt(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	p := seedProduct(t, db, "SKU-1", 10)
	seedOrder(t, repo, "ORD-C1", domain.StatusPending, []domain.OrderItem{
		{ProductID: p.ID, SKU: "SKU-1", UnitPrice: 20, Quantity: 2},
	})

	_, err := repo.Fulfill("ORD-C1")
	require.NoError(t, err)

	_, err = repo.Fulfill("ORD-C1")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

	// Stock was only taken once
	var stock int
	require.NoError(t, db.Model(&inventorydomain.Product{}).Where("id = ?", p.ID).Select("stock").Scan(&stock).Error)
	assert.Equal(t, 8, stock)
}

func TestFulfillConcurrentlyHasExactlyOneWinner(t *testing.T) {
	db := newFileTestDB(t)
	repo := NewGormOrderRepository(db)

	p := seedProduct(t, db, "SKU-1", 10)
	seedOrder(t, repo, "ORD-R1", domain.StatusPending, []domain.OrderItem{
		{ProductID: p.ID, SKU: "SKU-1", UnitPrice: 20, Quantity: 2},
	})

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.Fulfill("ORD-R1")
			// Retry through sqlite lock contention; the loser must
			// eventually surface the status-claim rejection.
			for err != nil && apperrors.CodeOf(err) == "" {
				_, err = repo.Fulfill("ORD-R1")
			}
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	var wins int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition), "loser error: %v", err)
	}
	require.Equal(t, 1, wins, "exactly one fulfillment claims the order")

	// Stock was taken once and the order moved exactly once
	var stock int
	require.NoError(t, db.Model(&inventorydomain.Product{}).Where("id = ?", p.ID).Select("stock").Scan(&stock).Error)
	assert.Equal(t, 8, stock)

	order, err := repo.FindByID("ORD-R1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, order.Status)
}

func TestFulfillUnknownOrder(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))

	_, err := repo.Fulfill("ORD-NOPE")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestFindAllFiltersByTextAndStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	seedOrder(t, repo, "ORD-X1", domain.StatusPending, nil)
	second := seedOrder(t, repo, "ORD-Y2", domain.StatusShipped, nil)
	second.CustomerName = "Alex Smith"
	require.NoError(t, repo.Update(second))

	byText, err := repo.FindAll(domain.Filter{Text: "alex"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "ORD-Y2", byText[0].ID)

	byID, err := repo.FindAll(domain.Filter{Text: "ord-x"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "ORD-X1", byID[0].ID)

	byStatus, err := repo.FindAll(domain.Filter{Status: domain.StatusShipped})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "ORD-Y2", byStatus[0].ID)

	all, err := repo.FindAll(domain.Filter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCountOpenByWholesalerExcludesTerminal(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	seedOrder(t, repo, "ORD-1", domain.StatusPending, nil)
	seedOrder(t, repo, "ORD-2", domain.StatusShipped, nil)
	seedOrder(t, repo, "ORD-3", domain.StatusDelivered, nil)
	seedOrder(t, repo, "ORD-4", domain.StatusFailed, nil)

	count, err := repo.CountOpenByWholesaler(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountOpenByWholesaler(99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))

	err := repo.UpdateStatus("ORD-MISSING", domain.StatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
