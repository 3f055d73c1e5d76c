// internal/repository/inventory.go
package repository

import (
	"context"

	"github.com/targetjit/inventory-backend/internal/domain"
)

type InventoryRepository interface {
	ReplaceAll(ctx context.Context, importID string, records []domain.InventoryRecord) error
	GetAll(ctx context.Context) ([]domain.InventoryRecord, error)
	GetBySKU(ctx context.Context, skuID string) (*domain.InventoryRecord, error)
	CountBelowReorder(ctx context.Context) (int, error)
}
