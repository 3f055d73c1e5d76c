// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/targetjit/inventory-backend/internal/domain"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

// ReplaceAll swaps the entire record set for the given import in a single
// transaction. Either the new set is fully visible or the old one stays.
func (r *inventoryRepository) ReplaceAll(ctx context.Context, importID string, records []domain.InventoryRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_records`); err != nil {
			return fmt.Errorf("failed to clear inventory records: %w", err)
		}

		query := `
			INSERT INTO inventory_records (
				sku_id, name, category, current_stock, rate, value,
				reorder_point, turnover_rate, lead_time, average_demand,
				stockout_risk, import_id, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		now := time.Now()
		for _, rec := range records {
			_, err := stmt.ExecContext(
				ctx,
				rec.SKUID,
				rec.Name,
				rec.Category,
				rec.CurrentStock,
				rec.Rate,
				rec.Value,
				rec.ReorderPoint,
				rec.TurnoverRate,
				rec.LeadTime,
				rec.AverageDemand,
				rec.StockoutRisk,
				importID,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert record %s: %w", rec.SKUID, err)
			}
		}

		return nil
	})
}

func (r *inventoryRepository) GetAll(ctx context.Context) ([]domain.InventoryRecord, error) {
	query := `
		SELECT
			sku_id, name, category, current_stock, rate, value,
			reorder_point, turnover_rate, lead_time, average_demand,
			stockout_risk
		FROM inventory_records
		ORDER BY sku_id ASC
	`

	var records []domain.InventoryRecord
	if err := sqlx.SelectContext(ctx, r.db, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory records: %w", err)
	}

	return records, nil
}

func (r *inventoryRepository) GetBySKU(ctx context.Context, skuID string) (*domain.InventoryRecord, error) {
	query := `
		SELECT
			sku_id, name, category, current_stock, rate, value,
			reorder_point, turnover_rate, lead_time, average_demand,
			stockout_risk
		FROM inventory_records
		WHERE sku_id = $1
	`

	var rec domain.InventoryRecord
	if err := sqlx.GetContext(ctx, r.db, &rec, query, skuID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record %s: %w", skuID, err)
	}

	return &rec, nil
}

func (r *inventoryRepository) CountBelowReorder(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM inventory_records WHERE current_stock < reorder_point`
	if err := sqlx.GetContext(ctx, r.db, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count records below reorder point: %w", err)
	}

	return count, nil
}
