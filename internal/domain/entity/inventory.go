package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBalance is the current on-hand quantity for a product, a
// materialized sum of its movement history. At most one row per product;
// Quantity never goes below zero. Mutated only by the stock-update
// transaction.
type InventoryBalance struct {
	ProductID int64
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// InventoryView is the balance joined with product details for display.
// LastUpdated is nil when the product has never had an inventory row.
type InventoryView struct {
	ProductID    int64
	Name         string
	CASNumber    string
	Unit         string
	CurrentStock decimal.Decimal
	LastUpdated  *time.Time
}
