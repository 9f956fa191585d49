package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo OrderRepository over PostgreSQL (usable with pool or tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the order adapter. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserts the order and all its line items.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, customer_name, customer_info, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.CustomerName, o.CustomerInfo, o.Status, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	for _, item := range o.Items {
		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, configuration)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Configuration,
		)
		if err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByID returns an order with its items expanded, or nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_info, status, total_amount, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerInfo, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns all orders with items, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_info, status, total_amount, created_at, updated_at
		FROM orders ORDER BY created_at DESC`
	return r.queryOrders(ctx, query)
}

// ListByStatus returns all orders in one status with items, newest first.
func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_info, status, total_amount, created_at, updated_at
		FROM orders WHERE status = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, status)
}

// SetStatus updates the order status in a single statement.
func (r *OrderRepo) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set order status: order %s not found", id)
	}
	return nil
}

// Delete removes an order and its items (cascade).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerInfo, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems expands line items (with their product) onto the given orders.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price, i.configuration,
		       p.id, p.name, p.description, p.base_price, p.currency, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		var p entity.Product
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Configuration,
			&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.Currency, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		item.Product = &p
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}
