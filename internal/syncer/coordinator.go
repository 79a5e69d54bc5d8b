package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	wholesalerdomain "github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// Aggregate sync states
const (
	StateSynced  = "synced"
	StateSyncing = "syncing"
	StateError   = "error"
)

// DefaultTimeout bounds a full sync run
const DefaultTimeout = 60 * time.Second

// WholesalerResult is the outcome of syncing one wholesaler
type WholesalerResult struct {
	WholesalerID uint   `json:"wholesaler_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ProductCount int    `json:"product_count"`
	Error        string `json:"error,omitempty"`
}

// SyncResult is the outcome of a full sync run
type SyncResult struct {
	SyncID   string             `json:"sync_id"`
	Status   string             `json:"status"`
	SyncedAt time.Time          `json:"synced_at"`
	Results  []WholesalerResult `json:"results"`
}

// Status is the queryable coordinator state
type Status struct {
	State    string     `json:"state"`
	SyncedAt *time.Time `json:"synced_at,omitempty"`
}

// EventPublisher emits the inventory.synced event. Best-effort.
type EventPublisher interface {
	InventorySynced(ctx context.Context, syncID, status string, results []WholesalerResult) error
}

// Coordinator reconciles local products against active wholesaler catalogs.
// Only one sync runs at a time; concurrent requests are rejected.
type Coordinator struct {
	wholesalers wholesalerdomain.WholesalerRepository
	products    inventorydomain.ProductRepository
	api         wholesalerdomain.APIClient
	events      EventPublisher
	timeout     time.Duration

	mu       sync.Mutex
	running  bool
	state    string
	syncedAt time.Time
}

// NewCoordinator creates a new sync coordinator
func NewCoordinator(
	wholesalers wholesalerdomain.WholesalerRepository,
	products inventorydomain.ProductRepository,
	api wholesalerdomain.APIClient,
	events EventPublisher,
	timeout time.Duration,
) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{
		wholesalers: wholesalers,
		products:    products,
		api:         api,
		events:      events,
		timeout:     timeout,
		state:       StateSynced,
	}
}

func (c *Coordinator) tryAcquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.running = true
	c.state = StateSyncing
	return true
}

// release clears the single-flight slot and commits the run's outcome.
// Only the worker goroutine calls this, so an abandoned run keeps holding
// the slot until it has fully drained.
func (c *Coordinator) release(result *SyncResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.state = result.Status
	c.syncedAt = result.SyncedAt
}

// Status returns the current coordinator state
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{State: c.state}
	if !c.syncedAt.IsZero() {
		at := c.syncedAt
		s.SyncedAt = &at
	}
	return s
}

// SyncInventory runs a full sync across all active wholesalers. A second
// call while one runs fails with a busy error. The watchdog timeout forces
// resolution, so the state never sticks at syncing.
func (c *Coordinator) SyncInventory(ctx context.Context) (*SyncResult, error) {
	if !c.tryAcquire() {
		return nil, apperrors.New(apperrors.CodeBusy, "inventory sync already in progress")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan *SyncResult, 1)
	go func() {
		result := c.run(ctx)
		c.release(result)
		done <- result
	}()

	select {
	case result := <-done:
		if c.events != nil {
			if err := c.events.InventorySynced(ctx, result.SyncID, result.Status, result.Results); err != nil {
				logger.Warn(ctx).Err(err).Str("sync_id", result.SyncID).Msg("Failed to publish inventory.synced event")
			}
		}
		return result, nil
	case <-ctx.Done():
		// The worker may still be draining a slow wholesaler. It keeps the
		// slot until run returns, so the next sync is rejected as busy
		// instead of overlapping the abandoned one.
		c.mu.Lock()
		c.state = StateError
		c.syncedAt = time.Now()
		c.mu.Unlock()
		logger.Error(ctx).Dur("timeout", c.timeout).Msg("Inventory sync watchdog fired")
		return nil, apperrors.Externalf("inventory sync timed out after %s", c.timeout)
	}
}

func (c *Coordinator) run(ctx context.Context) *SyncResult {
	result := &SyncResult{
		SyncID: uuid.New().String(),
		Status: StateSynced,
	}

	wholesalers, err := c.wholesalers.FindActive()
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to load active wholesalers")
		result.Status = StateError
		result.SyncedAt = time.Now()
		return result
	}

	for i := range wholesalers {
		if ctx.Err() != nil {
			// Watchdog fired; stop touching the database.
			result.Status = StateError
			break
		}

		w := &wholesalers[i]
		now := time.Now()

		count, err := c.syncWholesaler(ctx, w)
		if err != nil {
			logger.Error(ctx).Err(err).
				Uint("wholesaler_id", w.ID).
				Str("wholesaler", w.Name).
				Msg("Wholesaler sync failed")

			result.Status = StateError
			result.Results = append(result.Results, WholesalerResult{
				WholesalerID: w.ID,
				Name:         w.Name,
				Status:       wholesalerdomain.StatusError,
				Error:        err.Error(),
			})
			if ctx.Err() == nil {
				if err := c.wholesalers.UpdateSyncResult(w.ID, wholesalerdomain.StatusError, w.ProductCount, now); err != nil {
					logger.Error(ctx).Err(err).Uint("wholesaler_id", w.ID).Msg("Failed to record sync failure")
				}
			}
			continue
		}

		result.Results = append(result.Results, WholesalerResult{
			WholesalerID: w.ID,
			Name:         w.Name,
			Status:       wholesalerdomain.StatusConnected,
			ProductCount: count,
		})
		if err := c.wholesalers.UpdateSyncResult(w.ID, wholesalerdomain.StatusConnected, count, now); err != nil {
			logger.Error(ctx).Err(err).Uint("wholesaler_id", w.ID).Msg("Failed to record sync result")
		}
	}

	result.SyncedAt = time.Now()
	logger.Info(ctx).
		Str("sync_id", result.SyncID).
		Str("status", result.Status).
		Int("wholesalers", len(result.Results)).
		Msg("Inventory sync finished")

	return result
}

// syncWholesaler reconciles local products for one wholesaler against its
// catalog, keyed by SKU. Local products missing from the catalog drop to
// zero stock rather than being deleted.
func (c *Coordinator) syncWholesaler(ctx context.Context, w *wholesalerdomain.Wholesaler) (int, error) {
	catalog, err := c.api.FetchCatalog(ctx, w)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, apperrors.Externalf("sync aborted: %v", err)
	}

	existing, err := c.products.FindByWholesaler(w.ID)
	if err != nil {
		return 0, err
	}

	bySKU := make(map[string]*inventorydomain.Product, len(existing))
	for i := range existing {
		bySKU[existing[i].SKU] = &existing[i]
	}

	seen := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		seen[item.SKU] = true

		if product, ok := bySKU[item.SKU]; ok {
			product.Name = item.Name
			product.Price = item.Price
			product.Stock = item.Stock
			if err := c.products.Update(product); err != nil {
				return 0, err
			}
			continue
		}

		product := &inventorydomain.Product{
			Name:         item.Name,
			SKU:          item.SKU,
			Price:        item.Price,
			Stock:        item.Stock,
			WholesalerID: w.ID,
		}
		if err := c.products.Create(product); err != nil {
			return 0, err
		}
	}

	for sku, product := range bySKU {
		if seen[sku] || product.Stock == 0 {
			continue
		}
		if err := c.products.UpdateStock(product.ID, 0); err != nil {
			return 0, err
		}
	}

	return len(catalog), nil
}
