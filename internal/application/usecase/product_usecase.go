package usecase

import (
	"context"

	"github.com/quimatica/chemstock-api/internal/application/dto"
	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

// ProductUseCase CRUD and search for chemical products. Stock is never
// edited here; it only changes through movements.
type ProductUseCase struct {
	txRunner TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(txRunner TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create registers a new product and materializes its zero-balance inventory
// row in the same transaction. The CAS number must be unique; the check here
// is backed by the UNIQUE constraint in case a concurrent insert wins.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCAS(in.CASNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{
		Name:      in.Name,
		CASNumber: in.CASNumber,
		Unit:      in.Unit,
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		_ repository.MovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return invRepo.Init(product.ID)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update rewrites name, CAS number and unit. The CAS number must stay unique
// across all other products.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.repo.GetByCAS(in.CASNumber)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}

	product.Name = in.Name
	product.CASNumber = in.CASNumber
	product.Unit = in.Unit
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes the product. Its balance and movement history go with it
// (cascade at the schema level).
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(id)
}

// List returns all products with their balance, newest first.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductStockResponse, error) {
	list, err := uc.repo.ListWithStock()
	if err != nil {
		return nil, err
	}
	return toProductStockResponses(list), nil
}

// Get returns one product with its balance.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*dto.ProductStockResponse, error) {
	p, err := uc.repo.GetWithStock(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductStockResponse(p), nil
}

// Search matches name or CAS number by case-insensitive substring.
func (uc *ProductUseCase) Search(ctx context.Context, q string) ([]*dto.ProductStockResponse, error) {
	list, err := uc.repo.SearchWithStock(q)
	if err != nil {
		return nil, err
	}
	return toProductStockResponses(list), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CASNumber: p.CASNumber,
		Unit:      p.Unit,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductStockResponse(p *entity.ProductWithStock) *dto.ProductStockResponse {
	return &dto.ProductStockResponse{
		ID:           p.ID,
		Name:         p.Name,
		CASNumber:    p.CASNumber,
		Unit:         p.Unit,
		CurrentStock: p.CurrentStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductStockResponses(list []*entity.ProductWithStock) []*dto.ProductStockResponse {
	out := make([]*dto.ProductStockResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductStockResponse(p))
	}
	return out
}
