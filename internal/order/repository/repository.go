package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order together with its items
func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Create(order).Error
}

// FindByID retrieves an order with its items
func (r *GormOrderRepository) FindByID(id string) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAll retrieves orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(filter domain.Filter) ([]domain.Order, error) {
	var orders []domain.Order

	tx := r.db.Preload("Items")

	if text := strings.ToLower(strings.TrimSpace(filter.Text)); text != "" {
		pattern := "%" + text + "%"
		tx = tx.Where("LOWER(id) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" && filter.Status != "all" {
		tx = tx.Where("status = ?", filter.Status)
	}

	if err := tx.Order("placed_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindSince retrieves orders placed at or after the given time
func (r *GormOrderRepository) FindSince(t time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").
		Where("placed_at >= ?", t).
		Order("placed_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Update saves order fields and associations
func (r *GormOrderRepository) Update(order *domain.Order) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: false}).Save(order).Error
}

// UpdateStatus sets the status of an order
func (r *GormOrderRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountOpenByWholesaler counts orders in non-terminal states for a wholesaler
func (r *GormOrderRepository) CountOpenByWholesaler(wholesalerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).
		Where("wholesaler_id = ? AND status IN ?", wholesalerID, domain.OpenStatuses).
		Count(&count).Error
	return count, err
}

// Fulfill moves a pending order to processing and decrements product stock
// for every item inside a single transaction. Each decrement is a guarded
// conditional update, so concurrent fulfillments of overlapping stock cannot
// oversell; if any item lacks stock the whole transaction rolls back and the
// order stays pending.
func (r *GormOrderRepository) Fulfill(id string) (*domain.Order, error) {
	var fulfilled *domain.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("order %s not found", id)
			}
			return err
		}

		// Claiming the pending order first keeps double fulfillments out:
		// the loser of the race sees zero rows affected.
		claim := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", order.ID, domain.StatusPending).
			Update("status", domain.StatusProcessing)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return apperrors.New(apperrors.CodeInvalidTransition,
				"cannot fulfill order "+order.ID+" in status "+order.Status)
		}

		for _, item := range order.Items {
			var product inventorydomain.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFoundf("product %d not found", item.ProductID)
				}
				return err
			}

			decrement := tx.Model(&inventorydomain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if decrement.Error != nil {
				return decrement.Error
			}
			if decrement.RowsAffected == 0 {
				return apperrors.New(apperrors.CodeInsufficientStock,
					"insufficient stock for "+product.SKU)
			}
		}

		order.Status = domain.StatusProcessing
		fulfilled = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fulfilled, nil
}
