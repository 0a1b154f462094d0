package repository

import (
	"context"
	"database/sql"
	"errors"

	"vibe-cart/internal/domain"
)

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	SeedIfEmpty(ctx context.Context, samples []domain.Product) (bool, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns every product ordered by id
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price
		FROM products
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("list products", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
		)
		if err != nil {
			return nil, storageError("scan product", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("iterate products", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, storageError("find product by ID", err)
	}

	return product, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, storageError("count products", err)
	}
	return count, nil
}

// SeedIfEmpty inserts samples only when the catalog holds no product at all.
// Two processes starting together may both see an empty catalog; the insert
// skips ids that already exist, so the slower one writes nothing and reports
// false instead of failing on the primary key.
func (r *productRepository) SeedIfEmpty(ctx context.Context, samples []domain.Product) (bool, error) {
	return withTx(ctx, r.db, func(tx *sql.Tx) (bool, error) {
		var count int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
			return false, storageError("count products", err)
		}
		if count > 0 || len(samples) == 0 {
			return false, nil
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO products (id, name, description, price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`)
		if err != nil {
			return false, storageError("prepare product insert", err)
		}
		defer stmt.Close()

		var inserted int64
		for _, p := range samples {
			result, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Description, p.Price)
			if err != nil {
				return false, storageError("seed product "+p.ID, err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return false, storageError("get rows affected", err)
			}
			inserted += n
		}

		return inserted > 0, nil
	})
}
