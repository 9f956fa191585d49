package production

import (
	"context"

	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, handing it
// repositories bound to that transaction. StartProduction is the only
// operation in the system that needs this: status flip, stock deduction and
// tracking creation must commit together or not at all.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		productionRepo repository.ProductionRepository,
	) error) error
}
