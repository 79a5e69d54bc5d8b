package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/shipdrop/backend/pkg/apperrors"
)

// Order statuses. Delivered and failed are terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusFailed     = "failed"
)

// transitions is the fulfillment state machine: orders only move forward,
// failure is reachable from processing and shipped.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusShipped, StatusFailed},
	StatusShipped:    {StatusDelivered, StatusFailed},
	StatusDelivered:  {},
	StatusFailed:     {},
}

// OpenStatuses are the non-terminal order states
var OpenStatuses = []string{StatusPending, StatusProcessing, StatusShipped}

// Order represents a customer order routed to a wholesaler
type Order struct {
	ID                string         `json:"id" gorm:"primaryKey"`
	CustomerName      string         `json:"customer_name" gorm:"not null"`
	PlacedAt          time.Time      `json:"placed_at" gorm:"not null"`
	Items             []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount       float64        `json:"total_amount" gorm:"not null"`
	Status            string         `json:"status" gorm:"not null;default:'pending';index"`
	WholesalerID      uint           `json:"wholesaler_id" gorm:"not null;index"`
	TrackingNumber    string         `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// OrderItem is one line of an order. UnitPrice is a snapshot taken at
// creation time and is never re-linked to the live product price.
type OrderItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	OrderID     string  `json:"-" gorm:"index;not null"`
	ProductID   uint    `json:"product_id" gorm:"not null"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	UnitPrice   float64 `json:"unit_price" gorm:"not null"`
	UnitCost    float64 `json:"unit_cost" gorm:"not null;default:0"`
	Quantity    int     `json:"quantity" gorm:"not null"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// IsTerminal reports whether a status permits no further transitions
func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusFailed
}

// CanTransition reports whether the state machine allows from -> to
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to the given status, enforcing the state
// machine
func (o *Order) TransitionTo(status string) error {
	if !CanTransition(o.Status, status) {
		return apperrors.New(apperrors.CodeInvalidTransition,
			"cannot transition order "+o.ID+" from "+o.Status+" to "+status)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// Progress maps a status to delivery progress percent, as shown on the
// tracking progress bar. Terminal states pin at 100.
func Progress(status string) int {
	switch status {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 25
	case StatusShipped:
		return 75
	case StatusDelivered, StatusFailed:
		return 100
	default:
		return 0
	}
}

// Filter narrows an order listing; zero values and "all" mean no filter
type Filter struct {
	Text   string
	Status string
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id string) (*Order, error)
	FindAll(filter Filter) ([]Order, error)
	FindSince(t time.Time) ([]Order, error)
	Update(order *Order) error
	UpdateStatus(id, status string) error
	CountOpenByWholesaler(wholesalerID uint) (int64, error)
	// Fulfill atomically moves a pending order to processing and
	// decrements product stock per item. All-or-nothing: on insufficient
	// stock nothing changes and the order stays pending.
	Fulfill(id string) (*Order, error)
}
