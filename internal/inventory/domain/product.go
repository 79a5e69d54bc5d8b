package domain

import (
	"time"

	"gorm.io/gorm"
)

// Stock status values, derived from the stock level and never stored
const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"
)

// DefaultLowStockThreshold is used when no threshold is configured
const DefaultLowStockThreshold = 10

// Product represents a catalog product owned by the inventory registry
type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	SKU          string         `json:"sku" gorm:"uniqueIndex;not null"`
	ImageURL     string         `json:"image_url"`
	Price        float64        `json:"price" gorm:"not null"`
	Cost         float64        `json:"cost" gorm:"not null;default:0"`
	Stock        int            `json:"stock" gorm:"not null;default:0"`
	WholesalerID uint           `json:"wholesaler_id" gorm:"index"`
	Category     string         `json:"category"`
	Status       string         `json:"status" gorm:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// StockStatus derives the status from a stock level and threshold
func StockStatus(stock, lowStockThreshold int) string {
	switch {
	case stock == 0:
		return StatusOutOfStock
	case stock <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Refresh recomputes the derived status from the current stock level
func (p *Product) Refresh(lowStockThreshold int) {
	p.Status = StockStatus(p.Stock, lowStockThreshold)
}

// Filter narrows a product listing. Zero values and "all" mean no filter;
// filters compose with AND. Threshold is the low-stock boundary used when
// filtering by derived status.
type Filter struct {
	Text      string
	Category  string
	Status    string
	Threshold int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll(filter Filter) ([]Product, error)
	FindByWholesaler(wholesalerID uint) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
	CountOutOfStock() (int64, error)
	UpdateStock(id uint, stock int) error
}
