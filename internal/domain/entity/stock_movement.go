package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement kinds.
const (
	MovementIN  = "IN"  // increases the balance
	MovementOUT = "OUT" // decreases the balance
)

// ValidMovementKind reports whether k is IN or OUT.
func ValidMovementKind(k string) bool {
	return k == MovementIN || k == MovementOUT
}

// MovementRecord is one IN/OUT stock change, immutable once written.
// PreviousStock and NewStock snapshot the balance around the movement:
// NewStock = PreviousStock + Quantity for IN, - Quantity for OUT.
type MovementRecord struct {
	ID            int64
	ProductID     int64
	Kind          string
	Quantity      decimal.Decimal // always positive; Kind carries the direction
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	CreatedAt     time.Time
}

// MovementWithProduct is a movement joined with product name and CAS number
// for history listings.
type MovementWithProduct struct {
	MovementRecord
	ProductName string
	CASNumber   string
}
