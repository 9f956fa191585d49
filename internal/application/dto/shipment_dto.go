package dto

import (
	"time"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// CreateShipmentRequest body for POST /api/shipments. The order must be
// READY_FOR_SHIPMENT; creating the shipment flips it to SHIPPED.
type CreateShipmentRequest struct {
	OrderID       string     `json:"order_id"`
	WaybillNumber string     `json:"waybill_number"`
	CarrierInfo   string     `json:"carrier_info"`
	ShippedAt     *time.Time `json:"shipped_at,omitempty"`
}

// ShipmentResponse shipment with its order summary.
type ShipmentResponse struct {
	ID            string         `json:"id"`
	OrderID       string         `json:"order_id"`
	WaybillNumber string         `json:"waybill_number"`
	CarrierInfo   string         `json:"carrier_info"`
	ShippedAt     time.Time      `json:"shipped_at"`
	CreatedAt     time.Time      `json:"created_at"`
	Order         *OrderResponse `json:"order,omitempty"`
}

// NewShipmentResponse maps a shipment to its public view.
func NewShipmentResponse(s *entity.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:            s.ID,
		OrderID:       s.OrderID,
		WaybillNumber: s.WaybillNumber,
		CarrierInfo:   s.CarrierInfo,
		ShippedAt:     s.ShippedAt,
		CreatedAt:     s.CreatedAt,
	}
	if s.Order != nil {
		order := NewOrderResponse(s.Order)
		resp.Order = &order
	}
	return resp
}
