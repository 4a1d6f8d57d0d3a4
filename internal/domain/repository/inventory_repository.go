package repository

import "github.com/quimatica/chemstock-api/internal/domain/entity"

// InventoryRepository persistence port for the per-product balance row.
type InventoryRepository interface {
	// GetForUpdate reads the balance locking the row (SELECT FOR UPDATE).
	// A product without a row yields a zero balance.
	GetForUpdate(productID int64) (*entity.InventoryBalance, error)
	// Upsert inserts or updates the balance row, refreshing updated_at.
	Upsert(balance *entity.InventoryBalance) error
	// Init materializes a zero-balance row for a new product.
	Init(productID int64) error

	// ListViews returns every product joined with its balance, ordered by
	// product name.
	ListViews() ([]*entity.InventoryView, error)
	// GetView returns nil, nil when no product matches.
	GetView(productID int64) (*entity.InventoryView, error)
}
