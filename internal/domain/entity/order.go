package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. PENDING is the only status from which production may start;
// READY_FOR_SHIPMENT is the only status from which a shipment may be created.
const (
	OrderStatusPending          = "PENDING"
	OrderStatusInProduction     = "IN_PRODUCTION"
	OrderStatusReadyForShipment = "READY_FOR_SHIPMENT"
	OrderStatusShipped          = "SHIPPED"
	OrderStatusDelivered        = "DELIVERED"
	OrderStatusCompleted        = "COMPLETED"
	OrderStatusCancelled        = "CANCELLED"
)

// ValidOrderStatus reports whether s is part of the fixed status vocabulary.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProduction, OrderStatusReadyForShipment,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer order. TotalAmount is computed once at creation from
// the line items and never recomputed. CustomerInfo is an opaque payload
// (address, phone, ...) stored and returned unmodified.
type Order struct {
	ID           string
	CustomerID   *string
	CustomerName string
	CustomerInfo json.RawMessage
	Status       string
	TotalAmount  decimal.Decimal
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem is one order line. UnitPrice is the product's base price frozen
// at order time; Configuration is an opaque per-door payload (color, width,
// height, ...) the core never inspects.
type OrderItem struct {
	ID            string
	OrderID       string
	ProductID     string
	Quantity      int
	UnitPrice     decimal.Decimal
	Configuration json.RawMessage
	Product       *Product
}
