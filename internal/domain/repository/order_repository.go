package repository

import (
	"context"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// OrderRepository is the order ledger port. GetByID and the list methods
// expand line items (with their product); SetStatus is a single-statement
// write.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Order, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
