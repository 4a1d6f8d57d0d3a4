package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the balance and requested quantity of a
// rejected OUT movement so callers can report both.
type InsufficientStockError struct {
	CurrentStock decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: current %s, requested %s", e.CurrentStock, e.Requested)
}

// Unwrap makes errors.Is(err, ErrInsufficientStock) work on the typed error.
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
