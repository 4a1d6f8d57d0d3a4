package repository

import "github.com/quimatica/chemstock-api/internal/domain/entity"

// ProductRepository persistence port for chemical products.
type ProductRepository interface {
	// Create inserts the product and fills in its generated ID and timestamps.
	// Returns domain.ErrDuplicate on a CAS number collision.
	Create(product *entity.Product) error
	// GetByID returns nil, nil when no product matches.
	GetByID(id int64) (*entity.Product, error)
	// GetByCAS returns nil, nil when no product has the CAS number.
	GetByCAS(cas string) (*entity.Product, error)
	// Update rewrites name, CAS number and unit. Returns domain.ErrNotFound
	// when the product does not exist and domain.ErrDuplicate on a CAS collision.
	Update(product *entity.Product) error
	// Delete removes the product; inventory and movements go with it (cascade).
	// Returns domain.ErrNotFound when the product does not exist.
	Delete(id int64) error

	// ListWithStock returns all products joined with their balance,
	// newest first. Missing balance reads as zero.
	ListWithStock() ([]*entity.ProductWithStock, error)
	// GetWithStock returns nil, nil when no product matches.
	GetWithStock(id int64) (*entity.ProductWithStock, error)
	// SearchWithStock matches q case-insensitively against name or CAS
	// number as a substring, ordered by name.
	SearchWithStock(q string) ([]*entity.ProductWithStock, error)
}
