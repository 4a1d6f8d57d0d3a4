package usecase

import (
	"context"

	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that transaction. Product creation uses it so the
// product insert and its zero-balance inventory row commit together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error) error
}
