package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quimatica/chemstock-api/internal/application/dto"
	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

// UpdateStockUseCase applies IN/OUT stock movements transactionally: the
// balance row is locked (SELECT FOR UPDATE), validated, updated, and the
// movement appended with its balance snapshots, all in one transaction.
type UpdateStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewUpdateStockUseCase builds the use case.
func NewUpdateStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *UpdateStockUseCase {
	return &UpdateStockUseCase{txRunner: txRunner, productRepo: productRepo}
}

// ApplyMovement validates the request, then runs the read-modify-write under
// a row lock. An OUT that would take the balance below zero is rejected with
// InsufficientStockError and leaves no trace; any other failure inside the
// transaction rolls back both writes.
func (uc *UpdateStockUseCase) ApplyMovement(ctx context.Context, in dto.UpdateStockRequest) (*dto.StockUpdateResponse, error) {
	if !entity.ValidMovementKind(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var result *dto.StockUpdateResponse
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		// The balance is read inside the transaction under the row lock, so a
		// concurrent movement against the same product observes this one's
		// committed result.
		balance, err := invRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		previous := balance.Quantity

		var newStock decimal.Decimal
		if in.MovementType == entity.MovementIN {
			newStock = previous.Add(in.Quantity)
		} else {
			newStock = previous.Sub(in.Quantity)
			if newStock.IsNegative() {
				return &domain.InsufficientStockError{CurrentStock: previous, Requested: in.Quantity}
			}
		}

		balance.Quantity = newStock
		balance.UpdatedAt = time.Now()
		if err := invRepo.Upsert(balance); err != nil {
			return err
		}
		movement := &entity.MovementRecord{
			ProductID:     in.ProductID,
			Kind:          in.MovementType,
			Quantity:      in.Quantity,
			PreviousStock: previous,
			NewStock:      newStock,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}

		result = &dto.StockUpdateResponse{
			Message:       "Stock updated successfully",
			ProductID:     in.ProductID,
			MovementType:  in.MovementType,
			Quantity:      in.Quantity,
			PreviousStock: previous,
			NewStock:      newStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
