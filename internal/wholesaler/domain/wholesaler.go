package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Connection status values. Status is set only by a connection test or a
// sync attempt, never directly by the operator.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
)

// Wholesaler represents an external supplier API connection
type Wholesaler struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	APIKey       string         `json:"-" gorm:"not null"`
	APIEndpoint  string         `json:"api_endpoint" gorm:"not null"`
	Status       string         `json:"status" gorm:"not null;default:'connected'"`
	LastSyncAt   time.Time      `json:"last_sync_at"`
	ProductCount int            `json:"product_count" gorm:"not null;default:0"`
	Active       bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Wholesaler) TableName() string {
	return "wholesalers"
}

// WholesalerRepository defines the contract for wholesaler data access
type WholesalerRepository interface {
	Create(wholesaler *Wholesaler) error
	FindByID(id uint) (*Wholesaler, error)
	FindAll() ([]Wholesaler, error)
	FindActive() ([]Wholesaler, error)
	Update(wholesaler *Wholesaler) error
	Delete(id uint) error
	UpdateSyncResult(id uint, status string, productCount int, syncedAt time.Time) error
}

// CatalogItem is one product record in a wholesaler's catalog
type CatalogItem struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// OrderItemRequest is one line of a fulfillment request pushed to a wholesaler
type OrderItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is a fulfillment request pushed to a wholesaler
type OrderRequest struct {
	OrderID      string             `json:"order_id"`
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderConfirmation is the wholesaler's reply to a pushed order
type OrderConfirmation struct {
	TrackingNumber    string    `json:"tracking_number"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

// APIClient is the abstract wholesaler API contract. The exact wire format
// is wholesaler specific; the sync coordinator and order router depend
// only on this interface.
type APIClient interface {
	FetchCatalog(ctx context.Context, w *Wholesaler) ([]CatalogItem, error)
	PushOrder(ctx context.Context, w *Wholesaler, req OrderRequest) (*OrderConfirmation, error)
}

// OpenOrderCounter reports how many non-terminal orders still reference a
// wholesaler. Implemented by the order registry.
type OpenOrderCounter interface {
	CountOpenByWholesaler(wholesalerID uint) (int64, error)
}
