package repository

import (
	"context"
	"database/sql"
	"time"

	"vibe-cart/internal/domain"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	AddItem(ctx context.Context, productID string, qty int) (*domain.AddResult, error)
	RemoveItem(ctx context.Context, cartLineID string) (int64, error)
	GetCart(ctx context.Context) (domain.CartView, error)
	Clear(ctx context.Context) error
	ClearLines(ctx context.Context, lines []domain.CartLineView) error
}

type cartRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// AddItem increments the line for productID or creates it. The upsert is a
// single statement backed by the UNIQUE(product_id) constraint, so concurrent
// adds of the same product never produce two lines or drop an increment.
// The product reference is not checked here.
func (r *cartRepository) AddItem(ctx context.Context, productID string, qty int) (*domain.AddResult, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	query := `
		INSERT INTO cart_items (id, product_id, qty, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO UPDATE SET qty = cart_items.qty + excluded.qty
		RETURNING id, qty
	`

	newID := uuid.NewString()
	result := &domain.AddResult{ProductID: productID}

	err := r.db.QueryRowContext(ctx, query, newID, productID, qty, r.now()).Scan(&result.CartID, &result.Qty)
	if err != nil {
		return nil, storageError("upsert cart item", err)
	}

	if result.CartID == newID {
		result.Status = domain.AddStatusInserted
	} else {
		result.Status = domain.AddStatusUpdated
	}

	return result, nil
}

// RemoveItem deletes one line and returns how many rows went away (0 or 1).
func (r *cartRepository) RemoveItem(ctx context.Context, cartLineID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, cartLineID)
	if err != nil {
		return 0, storageError("delete cart item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, storageError("get rows affected", err)
	}

	return rowsAffected, nil
}

// GetCart joins every line with its product and sums the total.
func (r *cartRepository) GetCart(ctx context.Context) (domain.CartView, error) {
	query := `
		SELECT c.id, c.product_id, c.qty, c.added_at, p.name, p.price, p.description
		FROM cart_items c
		LEFT JOIN products p ON p.id = c.product_id
		ORDER BY c.added_at ASC, c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return domain.CartView{}, storageError("query cart", err)
	}
	defer rows.Close()

	items := []domain.CartLineView{}
	for rows.Next() {
		var (
			line        domain.CartLineView
			name        sql.NullString
			description sql.NullString
		)
		err := rows.Scan(
			&line.CartID,
			&line.ProductID,
			&line.Qty,
			&line.AddedAt,
			&name,
			&line.Price,
			&description,
		)
		if err != nil {
			return domain.CartView{}, storageError("scan cart item", err)
		}
		if name.Valid {
			line.Name = &name.String
		}
		if description.Valid {
			line.Description = &description.String
		}
		items = append(items, line)
	}

	if err = rows.Err(); err != nil {
		return domain.CartView{}, storageError("iterate cart items", err)
	}

	return domain.NewCartView(items), nil
}

// Clear removes every cart line.
func (r *cartRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return storageError("clear cart", err)
	}
	return nil
}

// ClearLines takes a snapshot of lines back out of the cart. A line whose
// quantity grew after the snapshot keeps the difference; a line at or below
// the snapshot quantity is deleted. Lines added after the snapshot survive.
func (r *cartRepository) ClearLines(ctx context.Context, lines []domain.CartLineView) error {
	if len(lines) == 0 {
		return nil
	}

	_, err := withTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, line := range lines {
			result, err := tx.ExecContext(ctx,
				`DELETE FROM cart_items WHERE id = $1 AND qty <= $2`,
				line.CartID, line.Qty,
			)
			if err != nil {
				return struct{}{}, storageError("delete checked out line", err)
			}
			deleted, err := result.RowsAffected()
			if err != nil {
				return struct{}{}, storageError("get rows affected", err)
			}
			if deleted > 0 {
				continue
			}

			_, err = tx.ExecContext(ctx,
				`UPDATE cart_items SET qty = qty - $2 WHERE id = $1 AND qty > $2`,
				line.CartID, line.Qty,
			)
			if err != nil {
				return struct{}{}, storageError("reduce checked out line", err)
			}
		}
		return struct{}{}, nil
	})
	return err
}
