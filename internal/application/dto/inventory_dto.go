package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStockRequest body for POST /inventory/update-stock.
// Quantity positivity is checked in the use case (decimal zero parses as
// valid JSON, so a tag alone cannot reject it).
type UpdateStockRequest struct {
	ProductID    int64           `json:"product_id" validate:"required,gt=0"`
	MovementType string          `json:"movement_type" validate:"required,oneof=IN OUT"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// StockUpdateResponse result of a stock movement, with the balance snapshot
// around it.
type StockUpdateResponse struct {
	Message       string          `json:"message"`
	ProductID     int64           `json:"product_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
}

// InsufficientStockResponse error body for an OUT movement that would take
// the balance below zero.
type InsufficientStockResponse struct {
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Requested    decimal.Decimal `json:"requested"`
}

// InventoryResponse a product's balance joined with product details.
type InventoryResponse struct {
	ProductID    int64           `json:"id"`
	Name         string          `json:"product_name"`
	CASNumber    string          `json:"cas_number"`
	Unit         string          `json:"unit_of_measurement"`
	CurrentStock decimal.Decimal `json:"current_stock_quantity"`
	LastUpdated  *time.Time      `json:"last_updated"`
}

// MovementResponse one history entry, joined with product name and CAS.
type MovementResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	ProductName   string          `json:"product_name"`
	CASNumber     string          `json:"cas_number"`
}
