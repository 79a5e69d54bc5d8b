package repository

import (
	"strings"

	"github.com/shipdrop/backend/internal/inventory/domain"
	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("sku = ?", sku).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll returns products matching the filter in insertion (id) order.
// The derived status filter is translated into stock-level conditions so
// status never has to be stored.
func (r *GormProductRepository) FindAll(filter domain.Filter) ([]domain.Product, error) {
	threshold := filter.Threshold
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}

	tx := r.db.Order("id ASC")

	if filter.Text != "" {
		pattern := "%" + strings.ToLower(filter.Text) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" && filter.Category != "all" {
		tx = tx.Where("category = ?", filter.Category)
	}
	switch filter.Status {
	case "", "all":
	case domain.StatusOutOfStock:
		tx = tx.Where("stock = 0")
	case domain.StatusLowStock:
		tx = tx.Where("stock > 0 AND stock <= ?", threshold)
	case domain.StatusInStock:
		tx = tx.Where("stock > ?", threshold)
	}

	var products []domain.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByWholesaler(wholesalerID uint) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("wholesaler_id = ?", wholesalerID).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountOutOfStock() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("stock = 0").Count(&count).Error
	return count, err
}

func (r *GormProductRepository) UpdateStock(id uint, stock int) error {
	return r.db.Model(&domain.Product{}).Where("id = ?", id).Update("stock", stock).Error
}
