package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atolyeos/atolye-api/internal/application/production"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner.
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to it, and
// commits on success or rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	productionRepo repository.ProductionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	productRepo := NewProductRepository(tx)
	productionRepo := NewProductionRepository(tx)

	if err := fn(orderRepo, materialRepo, productRepo, productionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
