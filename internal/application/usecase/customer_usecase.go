package usecase

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

// CustomerUseCase plain CRUD over customer records.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase builds the customer use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registers a customer.
func (uc *CustomerUseCase) Create(ctx context.Context, req dto.CreateCustomerRequest) (*entity.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		TaxID:     req.TaxID,
		TaxOffice: req.TaxOffice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID returns one customer.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return customer, nil
}

// List returns all customers ordered by name.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*entity.Customer, error) {
	return uc.repo.List(ctx)
}

// Update applies the non-nil fields.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*entity.Customer, error) {
	customer, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.TaxID != nil {
		customer.TaxID = *req.TaxID
	}
	if req.TaxOffice != nil {
		customer.TaxOffice = *req.TaxOffice
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer. Orders keep their frozen customer name.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
