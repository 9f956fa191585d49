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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo CustomerRepository over PostgreSQL (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the customer adapter. Pass pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create inserts a customer.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address, tax_id, tax_office, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.TaxID, c.TaxOffice, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID returns a customer, or nil when absent.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, tax_id, tax_office, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.TaxOffice, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, tax_id, tax_office, created_at, updated_at
		FROM customers ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.TaxOffice, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5, tax_id = $6, tax_office = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.TaxID, c.TaxOffice, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes a customer. Orders reference customers with ON DELETE SET
// NULL, so historical orders survive with their frozen customer name.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
