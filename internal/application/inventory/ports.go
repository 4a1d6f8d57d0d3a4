package inventory

import (
	"context"

	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that transaction. It is the atomicity guarantee for
// the stock-update operation: balance upsert and movement insert commit
// together or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error) error
}
