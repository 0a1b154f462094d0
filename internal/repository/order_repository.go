package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vibe-cart/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderParams carries the customer and the cart snapshot for a new order.
type CreateOrderParams struct {
	CustomerName  string
	CustomerEmail string
	Items         []domain.OrderItemInput
	Total         decimal.Decimal
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, params CreateOrderParams) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.OrderDetails, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
}

type orderRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create writes the order row and then every item in one transaction. Either
// all rows are committed or none are.
func (r *orderRepository) Create(ctx context.Context, params CreateOrderParams) (*domain.Order, error) {
	order := &domain.Order{
		ID:            uuid.NewString(),
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		Total:         params.Total,
		CreatedAt:     r.now(),
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) (*domain.Order, error) {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, customer_name, customer_email, total, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			order.ID,
			order.CustomerName,
			order.CustomerEmail,
			order.Total,
			order.CreatedAt,
		)
		if err != nil {
			return nil, storageError("create order", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO order_items (id, order_id, line_no, product_id, qty, price, name)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`)
		if err != nil {
			return nil, storageError("prepare order item insert", err)
		}
		defer stmt.Close()

		for i, item := range params.Items {
			_, err := stmt.ExecContext(ctx,
				uuid.NewString(),
				order.ID,
				i+1,
				item.ProductID,
				item.Qty,
				item.Price,
				item.Name,
			)
			if err != nil {
				return nil, storageError("create order item", err)
			}
		}

		return order, nil
	})
}

// FindByID retrieves an order with its items in purchase order
func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.OrderDetails, error) {
	details := &domain.OrderDetails{Items: []domain.OrderItem{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, total, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&details.Order.ID,
		&details.Order.CustomerName,
		&details.Order.CustomerEmail,
		&details.Order.Total,
		&details.Order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError("find order by ID", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, qty, price, name
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_no ASC
	`, id)
	if err != nil {
		return nil, storageError("query order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Qty,
			&item.Price,
			&item.Name,
		)
		if err != nil {
			return nil, storageError("scan order item", err)
		}
		details.Items = append(details.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("iterate order items", err)
	}

	return details, nil
}

// ListRecent returns the newest orders first
func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, customer_email, total, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storageError("list orders", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerEmail,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, storageError("scan order", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("iterate orders", err)
	}

	return orders, nil
}
