package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"flexstock/internal/inventory"

	"github.com/jmoiron/sqlx"
)

const healthCheckTimeout = 2 * time.Second

const productColumns = `id, name, category, price, stock, reorder_level, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, product inventory.Product) (inventory.Product, error) {
	query := `
		INSERT INTO products (name, category, price, stock, reorder_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	var p inventory.Product
	if err := r.db.GetContext(ctx, &p, query,
		product.Name, product.Category, product.Price, product.Stock, product.ReorderLevel,
	); err != nil {
		return inventory.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (inventory.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p inventory.Product
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Product{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Product{}, fmt.Errorf("select product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]inventory.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC`

	list := make([]inventory.Product, 0)
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, product inventory.Product) (inventory.Product, error) {
	query := `
		UPDATE products
		SET name = $2, category = $3, price = $4, stock = $5, reorder_level = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var p inventory.Product
	err := r.db.GetContext(ctx, &p, query,
		product.ID, product.Name, product.Category, product.Price, product.Stock, product.ReorderLevel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Product{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Product{}, fmt.Errorf("update product %d: %w", product.ID, err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return inventory.ErrNotFound
	}

	return nil
}

// Stats returns the row counts of products and inventory_updates.
func (r *PostgresRepository) Stats(ctx context.Context) (inventory.Stats, error) {
	var s inventory.Stats
	query := `
		SELECT
			(SELECT COUNT(*) FROM products) AS total_products,
			(SELECT COUNT(*) FROM inventory_updates) AS total_updates
	`
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return inventory.Stats{}, fmt.Errorf("count rows: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
