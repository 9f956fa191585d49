package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// OrderItemRequest one order line. Configuration is opaque (stored and
// returned unmodified, never validated).
type OrderItemRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
}

// CreateOrderRequest body for POST /api/orders. Unit prices are frozen from
// the product's base price at creation; the total is computed once and never
// recomputed.
type CreateOrderRequest struct {
	CustomerID   *string            `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name"`
	CustomerInfo json.RawMessage    `json:"customer_info,omitempty"`
	Items        []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest body for PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemDTO one order line of an order response.
type OrderItemDTO struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
}

// OrderResponse order with its expanded line items.
type OrderResponse struct {
	ID           string          `json:"id"`
	CustomerID   *string         `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	CustomerInfo json.RawMessage `json:"customer_info,omitempty"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Items        []OrderItemDTO  `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewOrderResponse maps an order to its public view.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		item := OrderItemDTO{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Configuration: it.Configuration,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
		}
		items = append(items, item)
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		CustomerInfo: o.CustomerInfo,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
