package repository

import (
	"context"
	"fmt"

	"flexstock/internal/inventory"
)

const updateColumns = `id, product_id, old_quantity, new_quantity, type, "user", product_name,
	old_name, new_name, old_price, new_price, old_category, new_category,
	old_reorder_level, new_reorder_level, timestamp`

// CreateUpdate appends one row to inventory_updates. id and timestamp are
// assigned by the database.
func (r *PostgresRepository) CreateUpdate(ctx context.Context, u inventory.Update) (inventory.UpdateEvent, error) {
	query := `
		INSERT INTO inventory_updates (
			product_id, old_quantity, new_quantity, type, "user", product_name,
			old_name, new_name, old_price, new_price, old_category, new_category,
			old_reorder_level, new_reorder_level
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + updateColumns

	var event inventory.UpdateEvent
	if err := r.db.GetContext(ctx, &event, query,
		u.ProductID, u.OldQuantity, u.NewQuantity, string(u.Type), u.User, u.ProductName,
		u.OldName, u.NewName, u.OldPrice, u.NewPrice, u.OldCategory, u.NewCategory,
		u.OldReorderLevel, u.NewReorderLevel,
	); err != nil {
		return inventory.UpdateEvent{}, fmt.Errorf("insert inventory update: %w", err)
	}
	return event, nil
}

func (r *PostgresRepository) ListUpdates(ctx context.Context) ([]inventory.UpdateEvent, error) {
	query := `SELECT ` + updateColumns + ` FROM inventory_updates ORDER BY timestamp ASC, id ASC`

	events := make([]inventory.UpdateEvent, 0)
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("query inventory updates: %w", err)
	}
	return events, nil
}
