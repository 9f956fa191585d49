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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserts a product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, base_price, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.BasePrice, p.Currency, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID returns a product, or nil when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, base_price, currency, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.Currency, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns all products ordered by name.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, base_price, currency, created_at, updated_at
		FROM products ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.Currency, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, base_price = $4, currency = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.BasePrice, p.Currency, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product and its recipe (cascade).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// GetRecipe returns the product's bill-of-materials. An unknown product
// yields an empty recipe, not an error.
func (r *ProductRepo) GetRecipe(ctx context.Context, productID string) ([]entity.RecipeItem, error) {
	query := `
		SELECT id, product_id, material_id, quantity
		FROM recipe_items WHERE product_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	defer rows.Close()

	recipe := make([]entity.RecipeItem, 0)
	for rows.Next() {
		var ri entity.RecipeItem
		if err := rows.Scan(&ri.ID, &ri.ProductID, &ri.MaterialID, &ri.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		recipe = append(recipe, ri)
	}
	return recipe, rows.Err()
}

// ReplaceRecipe swaps the whole bill-of-materials.
func (r *ProductRepo) ReplaceRecipe(ctx context.Context, productID string, items []entity.RecipeItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_items WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear recipe: %w", err)
	}
	for _, ri := range items {
		query := `
			INSERT INTO recipe_items (id, product_id, material_id, quantity)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(ctx, query, ri.ID, productID, ri.MaterialID, ri.Quantity); err != nil {
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}
	return nil
}
