// Package testutil provides in-memory implementations of the repository
// ports and the transaction runner for use-case and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

// MemStore holds products, balances and movements in memory.
type MemStore struct {
	Products  map[int64]*entity.Product
	Balances  map[int64]*entity.InventoryBalance
	Movements []*entity.MovementRecord

	nextProductID  int64
	nextMovementID int64
}

// NewMemStore builds an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		Products: make(map[int64]*entity.Product),
		Balances: make(map[int64]*entity.InventoryBalance),
	}
}

// ProductRepo returns a repository view over the store.
func (s *MemStore) ProductRepo() repository.ProductRepository { return &productRepo{s} }

// InventoryRepo returns a repository view over the store.
func (s *MemStore) InventoryRepo() repository.InventoryRepository { return &inventoryRepo{s} }

// MovementRepo returns a repository view over the store.
func (s *MemStore) MovementRepo() repository.MovementRepository { return &movementRepo{s} }

// TxRunner returns a runner that stages changes on a copy of the store and
// publishes them only when the callback succeeds, mirroring commit/rollback.
func (s *MemStore) TxRunner() *TxRunner { return &TxRunner{store: s} }

func (s *MemStore) clone() *MemStore {
	c := &MemStore{
		Products:       make(map[int64]*entity.Product, len(s.Products)),
		Balances:       make(map[int64]*entity.InventoryBalance, len(s.Balances)),
		Movements:      make([]*entity.MovementRecord, 0, len(s.Movements)),
		nextProductID:  s.nextProductID,
		nextMovementID: s.nextMovementID,
	}
	for id, p := range s.Products {
		cp := *p
		c.Products[id] = &cp
	}
	for id, b := range s.Balances {
		cb := *b
		c.Balances[id] = &cb
	}
	for _, m := range s.Movements {
		cm := *m
		c.Movements = append(c.Movements, &cm)
	}
	return c
}

// TxRunner satisfies the application-layer TxRunner ports.
type TxRunner struct {
	store *MemStore
}

// Run executes fn against a staged copy and swaps it in on success.
func (r *TxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	staged := r.store.clone()
	if err := fn(&productRepo{staged}, &inventoryRepo{staged}, &movementRepo{staged}); err != nil {
		return err
	}
	*r.store = *staged
	return nil
}

type productRepo struct{ s *MemStore }

func (r *productRepo) Create(product *entity.Product) error {
	for _, p := range r.s.Products {
		if p.CASNumber == product.CASNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.nextProductID++
	product.ID = r.s.nextProductID
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	cp := *product
	r.s.Products[product.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByCAS(cas string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.CASNumber == cas {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	existing, ok := r.s.Products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.Products {
		if p.ID != product.ID && p.CASNumber == product.CASNumber {
			return domain.ErrDuplicate
		}
	}
	existing.Name = product.Name
	existing.CASNumber = product.CASNumber
	existing.Unit = product.Unit
	existing.UpdatedAt = time.Now()
	product.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *productRepo) Delete(id int64) error {
	if _, ok := r.s.Products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Products, id)
	delete(r.s.Balances, id)
	kept := r.s.Movements[:0]
	for _, m := range r.s.Movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.Movements = kept
	return nil
}

func (r *productRepo) ListWithStock() ([]*entity.ProductWithStock, error) {
	list := make([]*entity.ProductWithStock, 0, len(r.s.Products))
	for _, p := range r.s.Products {
		list = append(list, r.withStock(p))
	}
	// newest first, matching ORDER BY created_at DESC
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *productRepo) GetWithStock(id int64) (*entity.ProductWithStock, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	return r.withStock(p), nil
}

func (r *productRepo) SearchWithStock(q string) ([]*entity.ProductWithStock, error) {
	q = strings.ToLower(q)
	var list []*entity.ProductWithStock
	for _, p := range r.s.Products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.CASNumber), q) {
			list = append(list, r.withStock(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *productRepo) withStock(p *entity.Product) *entity.ProductWithStock {
	stock := decimal.Zero
	if b, ok := r.s.Balances[p.ID]; ok {
		stock = b.Quantity
	}
	return &entity.ProductWithStock{
		ID:           p.ID,
		Name:         p.Name,
		CASNumber:    p.CASNumber,
		Unit:         p.Unit,
		CurrentStock: stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type inventoryRepo struct{ s *MemStore }

func (r *inventoryRepo) GetForUpdate(productID int64) (*entity.InventoryBalance, error) {
	if b, ok := r.s.Balances[productID]; ok {
		cb := *b
		return &cb, nil
	}
	return &entity.InventoryBalance{ProductID: productID, Quantity: decimal.Zero}, nil
}

func (r *inventoryRepo) Upsert(balance *entity.InventoryBalance) error {
	cb := *balance
	cb.UpdatedAt = time.Now()
	r.s.Balances[balance.ProductID] = &cb
	return nil
}

func (r *inventoryRepo) Init(productID int64) error {
	r.s.Balances[productID] = &entity.InventoryBalance{
		ProductID: productID,
		Quantity:  decimal.Zero,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (r *inventoryRepo) ListViews() ([]*entity.InventoryView, error) {
	list := make([]*entity.InventoryView, 0, len(r.s.Products))
	for _, p := range r.s.Products {
		list = append(list, r.view(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *inventoryRepo) GetView(productID int64) (*entity.InventoryView, error) {
	p, ok := r.s.Products[productID]
	if !ok {
		return nil, nil
	}
	return r.view(p), nil
}

func (r *inventoryRepo) view(p *entity.Product) *entity.InventoryView {
	v := &entity.InventoryView{
		ProductID:    p.ID,
		Name:         p.Name,
		CASNumber:    p.CASNumber,
		Unit:         p.Unit,
		CurrentStock: decimal.Zero,
	}
	if b, ok := r.s.Balances[p.ID]; ok {
		v.CurrentStock = b.Quantity
		t := b.UpdatedAt
		v.LastUpdated = &t
	}
	return v
}

type movementRepo struct{ s *MemStore }

func (r *movementRepo) Create(movement *entity.MovementRecord) error {
	r.s.nextMovementID++
	movement.ID = r.s.nextMovementID
	movement.CreatedAt = time.Now()
	cm := *movement
	r.s.Movements = append(r.s.Movements, &cm)
	return nil
}

func (r *movementRepo) ListByProduct(productID int64) ([]*entity.MovementWithProduct, error) {
	var list []*entity.MovementWithProduct
	for i := len(r.s.Movements) - 1; i >= 0; i-- {
		m := r.s.Movements[i]
		if m.ProductID == productID {
			list = append(list, r.withProduct(m))
		}
	}
	return list, nil
}

func (r *movementRepo) ListRecent(limit int) ([]*entity.MovementWithProduct, error) {
	var list []*entity.MovementWithProduct
	for i := len(r.s.Movements) - 1; i >= 0 && len(list) < limit; i-- {
		list = append(list, r.withProduct(r.s.Movements[i]))
	}
	return list, nil
}

func (r *movementRepo) withProduct(m *entity.MovementRecord) *entity.MovementWithProduct {
	out := &entity.MovementWithProduct{MovementRecord: *m}
	if p, ok := r.s.Products[m.ProductID]; ok {
		out.ProductName = p.Name
		out.CASNumber = p.CASNumber
	}
	return out
}
