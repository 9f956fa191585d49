// Package shipment implements the dispatch flow: shipments are created only
// for orders that finished the production pipeline, and creation flips the
// order to SHIPPED.
package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// WaybillGenerator renders the waybill document for a shipment.
type WaybillGenerator interface {
	GenerateWaybill(shipment *entity.Shipment) ([]byte, error)
}

// UseCase handles shipment creation and waybill documents.
type UseCase struct {
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.OrderRepository
	waybill      WaybillGenerator
}

// NewUseCase builds the shipment use case.
func NewUseCase(shipmentRepo repository.ShipmentRepository, orderRepo repository.OrderRepository, waybill WaybillGenerator) *UseCase {
	return &UseCase{shipmentRepo: shipmentRepo, orderRepo: orderRepo, waybill: waybill}
}

// Create registers the dispatch of an order. The order must be
// READY_FOR_SHIPMENT; an order that already has a shipment gets the existing
// record back unchanged, so retried dispatch calls are harmless.
func (uc *UseCase) Create(ctx context.Context, req dto.CreateShipmentRequest) (*entity.Shipment, error) {
	order, err := uc.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, req.OrderID)
	}

	existing, err := uc.shipmentRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if order.Status != entity.OrderStatusReadyForShipment {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrOrderNotReady, order.ID, order.Status)
	}

	now := time.Now()
	shippedAt := now
	if req.ShippedAt != nil {
		shippedAt = *req.ShippedAt
	}
	shipment := &entity.Shipment{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		WaybillNumber: req.WaybillNumber,
		CarrierInfo:   req.CarrierInfo,
		ShippedAt:     shippedAt,
		CreatedAt:     now,
		Order:         order,
	}
	if err := uc.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.SetStatus(ctx, order.ID, entity.OrderStatusShipped); err != nil {
		return nil, err
	}
	shipment.Order.Status = entity.OrderStatusShipped
	return shipment, nil
}

// GetByID returns one shipment with its order expanded.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	shipment, err := uc.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: shipment %s", domain.ErrNotFound, id)
	}
	return shipment, nil
}

// List returns all shipments, most recent first.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.List(ctx)
}

// GenerateWaybillPDF renders the waybill document for a shipment.
func (uc *UseCase) GenerateWaybillPDF(ctx context.Context, id string) ([]byte, error) {
	shipment, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.waybill.GenerateWaybill(shipment)
}
