// Package order implements order intake and lifecycle: creation with frozen
// pricing, status management and the proforma invoice document.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// ProformaGenerator renders the proforma invoice document for an order.
type ProformaGenerator interface {
	GenerateProforma(order *entity.Order) ([]byte, error)
}

// UseCase handles order intake and lifecycle.
type UseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	proforma     ProformaGenerator
}

// NewUseCase builds the order use case.
func NewUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository, proforma ProformaGenerator) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		proforma:     proforma,
	}
}

// Create registers a new order in PENDING status. Every line freezes the
// product's base price at this instant; the total is computed once here and
// never recomputed, so later price changes cannot touch existing orders.
func (uc *UseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", domain.ErrInvalidInput)
	}

	customerName := req.CustomerName
	if req.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, *req.CustomerID)
		}
		if customerName == "" {
			customerName = customer.Name
		}
	}
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.NewString(),
		CustomerID:   req.CustomerID,
		CustomerName: customerName,
		CustomerInfo: req.CustomerInfo,
		Status:       entity.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	total := decimal.Zero
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, line.ProductID)
		}

		item := entity.OrderItem{
			ID:            uuid.NewString(),
			OrderID:       order.ID,
			ProductID:     product.ID,
			Quantity:      line.Quantity,
			UnitPrice:     product.BasePrice,
			Configuration: line.Configuration,
			Product:       product,
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.Items = append(order.Items, item)
	}
	order.TotalAmount = total

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID returns one order with its expanded items.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	return order, nil
}

// List returns all orders, optionally filtered by status.
func (uc *UseCase) List(ctx context.Context, status string) ([]*entity.Order, error) {
	if status == "" {
		return uc.orderRepo.List(ctx)
	}
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	return uc.orderRepo.ListByStatus(ctx, status)
}

// UpdateStatus sets the order status directly. This is the manual override
// path; the production tracker and shipment flows drive their own status
// changes and do not go through here.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	if err := uc.orderRepo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// Delete removes an order and its items.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	return uc.orderRepo.Delete(ctx, id)
}

// GenerateProformaPDF renders the proforma invoice for an order.
func (uc *UseCase) GenerateProformaPDF(ctx context.Context, id string) ([]byte, error) {
	order, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.proforma.GenerateProforma(order)
}
