package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Units of measurement accepted for chemical products.
const (
	UnitKG    = "KG"
	UnitMT    = "MT"
	UnitLitre = "Litre"
)

// ValidUnit reports whether u is one of the accepted units.
func ValidUnit(u string) bool {
	switch u {
	case UnitKG, UnitMT, UnitLitre:
		return true
	}
	return false
}

// Product represents a chemical product. The CAS registry number is the
// business key and must be globally unique.
type Product struct {
	ID        int64
	Name      string
	CASNumber string
	Unit      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductWithStock is the read view of a product joined with its current
// balance. A product without an inventory row reads as zero stock.
type ProductWithStock struct {
	ID           int64
	Name         string
	CASNumber    string
	Unit         string
	CurrentStock decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
