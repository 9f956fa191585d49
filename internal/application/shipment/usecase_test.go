package shipment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/application/shipment"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

type fakeShipmentRepo struct{ byOrder map[string]*entity.Shipment }

func (f *fakeShipmentRepo) Create(_ context.Context, s *entity.Shipment) error {
	f.byOrder[s.OrderID] = s
	return nil
}

func (f *fakeShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	for _, s := range f.byOrder {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeShipmentRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Shipment, error) {
	return f.byOrder[orderID], nil
}

func (f *fakeShipmentRepo) List(_ context.Context) ([]*entity.Shipment, error) { return nil, nil }

type fakeOrderRepo struct{ orders map[string]*entity.Order }

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return f.orders[id], nil
}
func (f *fakeOrderRepo) List(_ context.Context) ([]*entity.Order, error) { return nil, nil }
func (f *fakeOrderRepo) ListByStatus(_ context.Context, _ string) ([]*entity.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) SetStatus(_ context.Context, id, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}
func (f *fakeOrderRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeWaybill struct{ calls int }

func (f *fakeWaybill) GenerateWaybill(_ *entity.Shipment) ([]byte, error) {
	f.calls++
	return []byte("%PDF-stub"), nil
}

func newFixture(orderStatus string) (*fakeShipmentRepo, *fakeOrderRepo, *shipment.UseCase) {
	shipments := &fakeShipmentRepo{byOrder: map[string]*entity.Shipment{}}
	orders := &fakeOrderRepo{orders: map[string]*entity.Order{
		"ord-1": {ID: "ord-1", Status: orderStatus},
	}}
	uc := shipment.NewUseCase(shipments, orders, &fakeWaybill{})
	return shipments, orders, uc
}

func TestShipmentCreate_ReadyOrder(t *testing.T) {
	_, orders, uc := newFixture(entity.OrderStatusReadyForShipment)

	s, err := uc.Create(context.Background(), dto.CreateShipmentRequest{
		OrderID:       "ord-1",
		WaybillNumber: "IRS-000123",
		CarrierInfo:   "Atölye kamyonu",
	})
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "ord-1", s.OrderID)
	assert.Equal(t, "IRS-000123", s.WaybillNumber)
	assert.Equal(t, entity.OrderStatusShipped, orders.orders["ord-1"].Status,
		"shipment creation must flip the order to SHIPPED")
	assert.Equal(t, entity.OrderStatusShipped, s.Order.Status)
	assert.False(t, s.ShippedAt.IsZero())
}

func TestShipmentCreate_HonorsExplicitShippedAt(t *testing.T) {
	_, _, uc := newFixture(entity.OrderStatusReadyForShipment)

	shippedAt := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	s, err := uc.Create(context.Background(), dto.CreateShipmentRequest{
		OrderID:   "ord-1",
		ShippedAt: &shippedAt,
	})
	require.NoError(t, err)
	assert.True(t, s.ShippedAt.Equal(shippedAt))
}

func TestShipmentCreate_RejectsUnfinishedOrder(t *testing.T) {
	for _, status := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusInProduction,
		entity.OrderStatusShipped,
		entity.OrderStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			shipments, _, uc := newFixture(status)
			_, err := uc.Create(context.Background(), dto.CreateShipmentRequest{OrderID: "ord-1"})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrOrderNotReady)
			assert.Empty(t, shipments.byOrder)
		})
	}
}

func TestShipmentCreate_IdempotentOnRetry(t *testing.T) {
	_, orders, uc := newFixture(entity.OrderStatusReadyForShipment)

	first, err := uc.Create(context.Background(), dto.CreateShipmentRequest{
		OrderID:       "ord-1",
		WaybillNumber: "IRS-000123",
	})
	require.NoError(t, err)

	// order is now SHIPPED; a retry must return the existing record
	// unchanged instead of erroring on the status gate
	second, err := uc.Create(context.Background(), dto.CreateShipmentRequest{
		OrderID:       "ord-1",
		WaybillNumber: "IRS-999999",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "IRS-000123", second.WaybillNumber, "retry payload must not overwrite the record")
	assert.Equal(t, entity.OrderStatusShipped, orders.orders["ord-1"].Status)
}

func TestShipmentCreate_UnknownOrder(t *testing.T) {
	_, _, uc := newFixture(entity.OrderStatusReadyForShipment)
	_, err := uc.Create(context.Background(), dto.CreateShipmentRequest{OrderID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
