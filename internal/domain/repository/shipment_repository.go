package repository

import (
	"context"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// ShipmentRepository is the shipment record port. GetByID expands the order
// with its items and products (the waybill renderer needs them).
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Shipment, error)
	List(ctx context.Context) ([]*entity.Shipment, error)
}
