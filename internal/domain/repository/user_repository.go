package repository

import (
	"context"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// UserRepository is the operator account port.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
