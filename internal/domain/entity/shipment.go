package entity

import "time"

// Shipment is the dispatch record of one order (unique per order). Created
// only when the order is READY_FOR_SHIPMENT; creating it flips the order to
// SHIPPED.
type Shipment struct {
	ID            string
	OrderID       string
	WaybillNumber string
	CarrierInfo   string
	ShippedAt     time.Time
	CreatedAt     time.Time
	Order         *Order
}
