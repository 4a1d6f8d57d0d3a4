package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo InventoryRepository implementation over PostgreSQL (usable with pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the balance persistence adapter. Pass a pool or tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetForUpdate reads the balance row locking it for the rest of the
// transaction (SELECT FOR UPDATE), so concurrent movements against the same
// product serialize. A product without a row yields a zero balance.
func (r *InventoryRepo) GetForUpdate(productID int64) (*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, current_stock_quantity, updated_at
		FROM inventory WHERE product_id = $1
		FOR UPDATE`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.ProductID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryBalance{ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserts or updates the balance row, refreshing updated_at.
func (r *InventoryRepo) Upsert(balance *entity.InventoryBalance) error {
	query := `
		INSERT INTO inventory (product_id, current_stock_quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET current_stock_quantity = EXCLUDED.current_stock_quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.ProductID, balance.Quantity)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// Init materializes the zero-balance row for a freshly created product.
func (r *InventoryRepo) Init(productID int64) error {
	query := `INSERT INTO inventory (product_id, current_stock_quantity) VALUES ($1, 0)`
	if _, err := r.q.Exec(context.Background(), query, productID); err != nil {
		return fmt.Errorf("init balance: %w", err)
	}
	return nil
}

const inventoryViewColumns = `
	cp.id,
	cp.product_name,
	cp.cas_number,
	cp.unit_of_measurement,
	COALESCE(i.current_stock_quantity, 0) AS current_stock_quantity,
	i.updated_at AS last_updated`

// ListViews returns every product joined with its balance, ordered by name.
func (r *InventoryRepo) ListViews() ([]*entity.InventoryView, error) {
	query := `
		SELECT ` + inventoryViewColumns + `
		FROM chemical_products cp
		LEFT JOIN inventory i ON cp.id = i.product_id
		ORDER BY cp.product_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryView
	for rows.Next() {
		var v entity.InventoryView
		if err := rows.Scan(&v.ProductID, &v.Name, &v.CASNumber, &v.Unit, &v.CurrentStock, &v.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan inventory view: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// GetView returns one product's inventory view.
func (r *InventoryRepo) GetView(productID int64) (*entity.InventoryView, error) {
	query := `
		SELECT ` + inventoryViewColumns + `
		FROM chemical_products cp
		LEFT JOIN inventory i ON cp.id = i.product_id
		WHERE cp.id = $1`
	var v entity.InventoryView
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&v.ProductID, &v.Name, &v.CASNumber, &v.Unit, &v.CurrentStock, &v.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory view: %w", err)
	}
	return &v, nil
}
