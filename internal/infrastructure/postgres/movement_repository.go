package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo MovementRepository implementation over PostgreSQL (usable with pool or tx).
// Movements are append-only; there is no update or delete path.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the movement log adapter. Pass a pool or tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create appends one movement record with its balance snapshots.
func (r *MovementRepo) Create(movement *entity.MovementRecord) error {
	query := `
		INSERT INTO stock_movements (product_id, movement_type, quantity, previous_stock, new_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		movement.ProductID, movement.Kind, movement.Quantity,
		movement.PreviousStock, movement.NewStock,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementColumns = `
	sm.id,
	sm.product_id,
	sm.movement_type,
	sm.quantity,
	sm.previous_stock,
	sm.new_stock,
	sm.created_at,
	cp.product_name,
	cp.cas_number`

// ListByProduct returns a product's movements, newest first.
func (r *MovementRepo) ListByProduct(productID int64) ([]*entity.MovementWithProduct, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements sm
		JOIN chemical_products cp ON sm.product_id = cp.id
		WHERE sm.product_id = $1
		ORDER BY sm.created_at DESC, sm.id DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListRecent returns the latest movements across all products, capped at limit.
func (r *MovementRepo) ListRecent(limit int) ([]*entity.MovementWithProduct, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements sm
		JOIN chemical_products cp ON sm.product_id = cp.id
		ORDER BY sm.created_at DESC, sm.id DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.MovementWithProduct, error) {
	var list []*entity.MovementWithProduct
	for rows.Next() {
		var m entity.MovementWithProduct
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.CreatedAt, &m.ProductName, &m.CASNumber); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
