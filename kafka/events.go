package kafka

import "time"

// Event types
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeInventorySynced    = "inventory.synced"
)

// Kafka topics
const (
	TopicOrders    = "shipdrop.orders"
	TopicInventory = "shipdrop.inventory"
)

// OrderCreatedEvent announces a newly placed order
type OrderCreatedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	WholesalerID uint      `json:"wholesaler_id"`
	TotalAmount  float64   `json:"total_amount"`
	ItemCount    int       `json:"item_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent announces an order state machine transition
type OrderStatusChangedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// SyncOutcome is the per-wholesaler payload of an inventory sync event
type SyncOutcome struct {
	WholesalerID uint   `json:"wholesaler_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ProductCount int    `json:"product_count"`
	Error        string `json:"error,omitempty"`
}

// InventorySyncedEvent announces the outcome of a full inventory sync run
type InventorySyncedEvent struct {
	EventID   string        `json:"event_id"`
	EventType string        `json:"event_type"`
	SyncID    string        `json:"sync_id"`
	Status    string        `json:"status"`
	Results   []SyncOutcome `json:"results"`
	Timestamp time.Time     `json:"timestamp"`
}
