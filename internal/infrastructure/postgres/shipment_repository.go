package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo ShipmentRepository over PostgreSQL (usable with pool or tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository builds the shipment adapter. Pass pool or tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create inserts a shipment. The order_id column is unique; a second
// shipment for the same order surfaces as ErrDuplicate.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, order_id, waybill_number, carrier_info, shipped_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.OrderID, s.WaybillNumber, s.CarrierInfo, s.ShippedAt, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create shipment: %w", err)
	}
	return nil
}

// GetByID returns a shipment with its order expanded, or nil when absent.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	query := `
		SELECT id, order_id, waybill_number, carrier_info, shipped_at, created_at
		FROM shipments WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByOrderID returns the order's shipment with the order expanded, or nil.
func (r *ShipmentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Shipment, error) {
	query := `
		SELECT id, order_id, waybill_number, carrier_info, shipped_at, created_at
		FROM shipments WHERE order_id = $1`
	return r.getOne(ctx, query, orderID)
}

// List returns all shipments with their orders, newest first.
func (r *ShipmentRepo) List(ctx context.Context) ([]*entity.Shipment, error) {
	query := `
		SELECT id, order_id, waybill_number, carrier_info, shipped_at, created_at
		FROM shipments ORDER BY shipped_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.OrderID, &s.WaybillNumber, &s.CarrierInfo, &s.ShippedAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	orderRepo := NewOrderRepository(r.q)
	for _, s := range out {
		order, err := orderRepo.GetByID(ctx, s.OrderID)
		if err != nil {
			return nil, err
		}
		s.Order = order
	}
	return out, nil
}

func (r *ShipmentRepo) getOne(ctx context.Context, query string, arg any) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.OrderID, &s.WaybillNumber, &s.CarrierInfo, &s.ShippedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	order, err := NewOrderRepository(r.q).GetByID(ctx, s.OrderID)
	if err != nil {
		return nil, err
	}
	s.Order = order
	return &s, nil
}
