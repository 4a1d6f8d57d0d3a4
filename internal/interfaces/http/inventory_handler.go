package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/quimatica/chemstock-api/internal/application/dto"
	"github.com/quimatica/chemstock-api/internal/application/inventory"
	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/pkg/validator"
)

// InventoryHandler handles HTTP requests for stock levels and movements.
type InventoryHandler struct {
	update *inventory.UpdateStockUseCase
	query  *inventory.QueryUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(update *inventory.UpdateStockUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{update: update, query: query}
}

// List godoc
// @Summary      List stock levels for all products
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.InventoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Failed to fetch inventory"})
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Get the stock level for one product
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "Product ID"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/product/{id} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id must be an integer"})
	}
	out, err := h.query.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Failed to fetch inventory"})
	}
	return c.JSON(out)
}

// UpdateStock godoc
// @Summary      Apply an IN/OUT stock movement
// @Description  Atomically updates the balance and appends a movement record.
//               An OUT that would take the balance below zero is rejected and
//               leaves both untouched.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStockRequest  true  "product_id, movement_type (IN or OUT), quantity"
// @Success      200   {object}  dto.StockUpdateResponse
// @Failure      400   {object}  dto.InsufficientStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /inventory/update-stock [post]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Message(errs)})
	}
	out, err := h.update.ApplyMovement(c.Context(), in)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusBadRequest).JSON(dto.InsufficientStockResponse{
				Code:         "INSUFFICIENT_STOCK",
				Message:      "Insufficient stock. Stock cannot go below zero.",
				CurrentStock: insufficient.CurrentStock,
				Requested:    insufficient.Requested,
			})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Movement type must be IN or OUT and quantity must be a positive number"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Failed to update stock"})
	}
	return c.JSON(out)
}

// HistoryByProduct godoc
// @Summary      Movement history for one product, newest first
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "Product ID"
// @Success      200  {array}   dto.MovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /inventory/history/{id} [get]
func (h *InventoryHandler) HistoryByProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id must be an integer"})
	}
	out, err := h.query.HistoryByProduct(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Failed to fetch stock history"})
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Recent movement history across all products (newest 100)
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.MovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /inventory/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	out, err := h.query.RecentHistory(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Failed to fetch stock history"})
	}
	return c.JSON(out)
}
