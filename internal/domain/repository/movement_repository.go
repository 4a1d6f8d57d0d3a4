package repository

import "github.com/quimatica/chemstock-api/internal/domain/entity"

// MovementRepository persistence port for the append-only movement log.
type MovementRepository interface {
	// Create appends a movement record and fills in its generated ID.
	Create(movement *entity.MovementRecord) error
	// ListByProduct returns a product's movements, newest first, joined
	// with product name and CAS number.
	ListByProduct(productID int64) ([]*entity.MovementWithProduct, error)
	// ListRecent returns the latest movements across all products,
	// newest first, capped at limit.
	ListRecent(limit int) ([]*entity.MovementWithProduct, error)
}
