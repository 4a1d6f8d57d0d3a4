package inventory

import (
	"context"

	"github.com/quimatica/chemstock-api/internal/application/dto"
	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

// Global history listings are capped at the newest rows.
const recentHistoryLimit = 100

// QueryUseCase read side of inventory: joined balance views and movement
// history.
type QueryUseCase struct {
	invRepo repository.InventoryRepository
	movRepo repository.MovementRepository
}

// NewQueryUseCase builds the use case.
func NewQueryUseCase(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo, movRepo: movRepo}
}

// List returns every product with its balance, ordered by product name.
func (uc *QueryUseCase) List(ctx context.Context) ([]*dto.InventoryResponse, error) {
	views, err := uc.invRepo.ListViews()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toInventoryResponse(v))
	}
	return out, nil
}

// Get returns one product's balance view.
func (uc *QueryUseCase) Get(ctx context.Context, productID int64) (*dto.InventoryResponse, error) {
	v, err := uc.invRepo.GetView(productID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(v), nil
}

// HistoryByProduct returns a product's movements, newest first.
func (uc *QueryUseCase) HistoryByProduct(ctx context.Context, productID int64) ([]*dto.MovementResponse, error) {
	movements, err := uc.movRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// RecentHistory returns the newest movements across all products, capped at
// recentHistoryLimit.
func (uc *QueryUseCase) RecentHistory(ctx context.Context) ([]*dto.MovementResponse, error) {
	movements, err := uc.movRepo.ListRecent(recentHistoryLimit)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toInventoryResponse(v *entity.InventoryView) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ProductID:    v.ProductID,
		Name:         v.Name,
		CASNumber:    v.CASNumber,
		Unit:         v.Unit,
		CurrentStock: v.CurrentStock,
		LastUpdated:  v.LastUpdated,
	}
}

func toMovementResponses(list []*entity.MovementWithProduct) []*dto.MovementResponse {
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			MovementType:  m.Kind,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			CreatedAt:     m.CreatedAt,
			ProductName:   m.ProductName,
			CASNumber:     m.CASNumber,
		})
	}
	return out
}
