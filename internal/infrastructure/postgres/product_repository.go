package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository implementation over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product persistence adapter. Pass a pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserts a new product and scans back the generated ID and timestamps.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO chemical_products (product_name, cas_number, unit_of_measurement)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.CASNumber, product.Unit,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches one product by ID.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT id, product_name, cas_number, unit_of_measurement, created_at, updated_at
		FROM chemical_products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.CASNumber, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByCAS fetches one product by CAS number (exact, case-sensitive).
func (r *ProductRepo) GetByCAS(cas string) (*entity.Product, error) {
	query := `
		SELECT id, product_name, cas_number, unit_of_measurement, created_at, updated_at
		FROM chemical_products WHERE cas_number = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, cas).Scan(
		&p.ID, &p.Name, &p.CASNumber, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by cas: %w", err)
	}
	return &p, nil
}

// Update rewrites the editable fields and refreshes updated_at.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE chemical_products
		SET product_name = $1, cas_number = $2, unit_of_measurement = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.CASNumber, product.Unit, product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes the product; inventory and movement rows cascade.
func (r *ProductRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM chemical_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const productWithStockColumns = `
	cp.id,
	cp.product_name,
	cp.cas_number,
	cp.unit_of_measurement,
	COALESCE(i.current_stock_quantity, 0) AS current_stock_quantity,
	cp.created_at,
	cp.updated_at`

// ListWithStock returns every product left-joined with its balance, newest first.
func (r *ProductRepo) ListWithStock() ([]*entity.ProductWithStock, error) {
	query := `
		SELECT ` + productWithStockColumns + `
		FROM chemical_products cp
		LEFT JOIN inventory i ON cp.id = i.product_id
		ORDER BY cp.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProductsWithStock(rows)
}

// GetWithStock returns one product joined with its balance.
func (r *ProductRepo) GetWithStock(id int64) (*entity.ProductWithStock, error) {
	query := `
		SELECT ` + productWithStockColumns + `
		FROM chemical_products cp
		LEFT JOIN inventory i ON cp.id = i.product_id
		WHERE cp.id = $1`
	var p entity.ProductWithStock
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.CASNumber, &p.Unit, &p.CurrentStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with stock: %w", err)
	}
	return &p, nil
}

// SearchWithStock matches name or CAS number by case-insensitive substring.
func (r *ProductRepo) SearchWithStock(q string) ([]*entity.ProductWithStock, error) {
	query := `
		SELECT ` + productWithStockColumns + `
		FROM chemical_products cp
		LEFT JOIN inventory i ON cp.id = i.product_id
		WHERE cp.product_name ILIKE $1 OR cp.cas_number ILIKE $1
		ORDER BY cp.product_name`
	rows, err := r.q.Query(context.Background(), query, "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return scanProductsWithStock(rows)
}

func scanProductsWithStock(rows pgx.Rows) ([]*entity.ProductWithStock, error) {
	var list []*entity.ProductWithStock
	for rows.Next() {
		var p entity.ProductWithStock
		if err := rows.Scan(&p.ID, &p.Name, &p.CASNumber, &p.Unit, &p.CurrentStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
