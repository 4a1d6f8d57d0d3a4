package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema DDL. Creation is idempotent and runs once at process startup.
// The non-negative balance and positive movement quantity invariants are
// enforced here as well as in the application layer.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS chemical_products (
		id SERIAL PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		cas_number VARCHAR(50) UNIQUE NOT NULL,
		unit_of_measurement VARCHAR(20) NOT NULL CHECK (unit_of_measurement IN ('KG', 'MT', 'Litre')),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES chemical_products(id) ON DELETE CASCADE,
		current_stock_quantity DECIMAL(10, 2) NOT NULL DEFAULT 0 CHECK (current_stock_quantity >= 0),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES chemical_products(id) ON DELETE CASCADE,
		movement_type VARCHAR(10) NOT NULL CHECK (movement_type IN ('IN', 'OUT')),
		quantity DECIMAL(10, 2) NOT NULL CHECK (quantity > 0),
		previous_stock DECIMAL(10, 2) NOT NULL,
		new_stock DECIMAL(10, 2) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
