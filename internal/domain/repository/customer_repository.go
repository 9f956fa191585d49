package repository

import (
	"context"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// CustomerRepository is the customer record port (plain record store).
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
