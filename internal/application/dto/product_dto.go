package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input for creating a product.
type CreateProductRequest struct {
	Name      string `json:"product_name" validate:"required,min=1,max=255"`
	CASNumber string `json:"cas_number" validate:"required,min=1,max=50"`
	Unit      string `json:"unit_of_measurement" validate:"required,oneof=KG MT Litre"`
}

// UpdateProductRequest input for updating a product. All fields are required,
// matching the PUT semantics of the API.
type UpdateProductRequest struct {
	Name      string `json:"product_name" validate:"required,min=1,max=255"`
	CASNumber string `json:"cas_number" validate:"required,min=1,max=50"`
	Unit      string `json:"unit_of_measurement" validate:"required,oneof=KG MT Litre"`
}

// ProductResponse a product row as written (create/update responses).
type ProductResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"product_name"`
	CASNumber string    `json:"cas_number"`
	Unit      string    `json:"unit_of_measurement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductStockResponse a product joined with its current balance
// (list/get/search responses). Missing balance reads as 0.
type ProductStockResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"product_name"`
	CASNumber    string          `json:"cas_number"`
	Unit         string          `json:"unit_of_measurement"`
	CurrentStock decimal.Decimal `json:"current_stock_quantity"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
