package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// UseCase drives the production tracker: the fixed-stage state machine, its
// history bookkeeping and the stock-deduction side effect on production start.
type UseCase struct {
	txRunner       TxRunner
	orderRepo      repository.OrderRepository
	productionRepo repository.ProductionRepository
}

// NewUseCase builds the tracker use case.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productionRepo repository.ProductionRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		orderRepo:      orderRepo,
		productionRepo: productionRepo,
	}
}

// StartProduction moves a PENDING order into production. Inside a single
// transaction it (1) sets the order status to IN_PRODUCTION, (2) deducts
// recipeQuantity x itemQuantity from every material the order consumes and
// (3) creates the tracking at the first stage with one open history entry.
// A failure anywhere rolls all three back; partial deduction would silently
// corrupt stock.
//
// Deduction has no floor: stock may go negative and the forecast report
// surfaces that as a tagged state.
func (uc *UseCase) StartProduction(ctx context.Context, orderID string) (*entity.ProductionTracking, error) {
	var tracking *entity.ProductionTracking

	err := uc.txRunner.Run(ctx, func(
		orders repository.OrderRepository,
		materials repository.MaterialRepository,
		products repository.ProductRepository,
		production repository.ProductionRepository,
	) error {
		// Re-read the order inside the transaction so the status check sees
		// the latest committed state.
		order, err := orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
		}
		if order.Status != entity.OrderStatusPending {
			return fmt.Errorf("%w: order must be PENDING to start production, got %s",
				domain.ErrInvalidStateTransition, order.Status)
		}

		if err := orders.SetStatus(ctx, orderID, entity.OrderStatusInProduction); err != nil {
			return err
		}

		for _, item := range order.Items {
			recipe, err := products.GetRecipe(ctx, item.ProductID)
			if err != nil {
				return err
			}
			itemQty := decimal.NewFromInt(int64(item.Quantity))
			for _, ri := range recipe {
				deduct := ri.Quantity.Mul(itemQty)
				if err := materials.AdjustStock(ctx, ri.MaterialID, deduct.Neg()); err != nil {
					return err
				}
			}
		}

		tracking = newTracking(orderID, time.Now())
		return production.Create(ctx, tracking)
	})
	if err != nil {
		return nil, err
	}
	return tracking, nil
}

// EnsureTracking is the side-effect-free creation path: it returns the
// existing tracking unchanged if one exists, otherwise creates one at the
// first stage and marks the order IN_PRODUCTION.
//
// It performs NO stock deduction. Callers that need materials deducted must
// go through StartProduction; this entry point exists for orders whose
// materials were already accounted for (imports, re-created trackings).
func (uc *UseCase) EnsureTracking(ctx context.Context, orderID string) (*entity.ProductionTracking, error) {
	existing, err := uc.productionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}

	tracking := newTracking(orderID, time.Now())
	if err := uc.productionRepo.Create(ctx, tracking); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.SetStatus(ctx, orderID, entity.OrderStatusInProduction); err != nil {
		return nil, err
	}
	return tracking, nil
}

// AdvanceStage moves a tracking to the requested stage.
//
// The target must belong to the stage vocabulary and must not precede the
// current stage (non-strict: re-entering the same stage is sanctioned and
// appends a duplicate history row). The prior open history entry is closed
// at the same instant the new one opens. Reaching the terminal stage also
// flips the parent order to READY_FOR_SHIPMENT.
//
// Concurrent calls on the same tracking are not serialized; a race can
// produce duplicate or out-of-order history rows. Accepted limitation.
func (uc *UseCase) AdvanceStage(ctx context.Context, trackingID string, stage entity.Stage) (*entity.ProductionTracking, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStage, stage)
	}

	tracking, err := uc.productionRepo.GetByID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, fmt.Errorf("%w: production tracking %s", domain.ErrNotFound, trackingID)
	}

	current := tracking.CurrentStage
	if stage.Ordinal() < current.Ordinal() {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrBackwardTransition, current, stage)
	}

	now := time.Now()
	if err := uc.productionRepo.CloseOpenHistory(ctx, trackingID, now); err != nil {
		return nil, err
	}
	entry := &entity.ProductionHistory{
		ID:         uuid.New().String(),
		TrackingID: trackingID,
		Stage:      stage,
		EnteredAt:  now,
		Notes:      fmt.Sprintf("Moved from %s to %s", current, stage),
	}
	if err := uc.productionRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}
	if err := uc.productionRepo.UpdateStage(ctx, trackingID, stage); err != nil {
		return nil, err
	}

	if stage.Terminal() {
		if err := uc.orderRepo.SetStatus(ctx, tracking.OrderID, entity.OrderStatusReadyForShipment); err != nil {
			return nil, err
		}
	}

	return uc.productionRepo.GetByID(ctx, trackingID)
}

// GetByID returns one tracking with its history.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.ProductionTracking, error) {
	tracking, err := uc.productionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, fmt.Errorf("%w: production tracking %s", domain.ErrNotFound, id)
	}
	return tracking, nil
}

// ListActive returns trackings whose orders are still on the shop floor.
func (uc *UseCase) ListActive(ctx context.Context) ([]*entity.ProductionTracking, error) {
	return uc.productionRepo.ListActive(ctx)
}

// newTracking builds a tracking at the first stage with one open history
// entry for it.
func newTracking(orderID string, now time.Time) *entity.ProductionTracking {
	trackingID := uuid.New().String()
	return &entity.ProductionTracking{
		ID:           trackingID,
		OrderID:      orderID,
		CurrentStage: entity.StageCuttingBending,
		StartedAt:    now,
		History: []entity.ProductionHistory{{
			ID:         uuid.New().String(),
			TrackingID: trackingID,
			Stage:      entity.StageCuttingBending,
			EnteredAt:  now,
			Notes:      "Production started",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
