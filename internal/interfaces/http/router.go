package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quimatica/chemstock-api/internal/application/inventory"
	"github.com/quimatica/chemstock-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	UpdateStock *inventory.UpdateStockUseCase
	Inventory   *inventory.QueryUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	// registered before /:id so "search" is not taken as an ID
	products.Get("/search/:query", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	inv := app.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.UpdateStock, deps.Inventory)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/update-stock", inventoryHandler.UpdateStock)
	inv.Get("/history", inventoryHandler.History)
	inv.Get("/history/:id", inventoryHandler.HistoryByProduct)
	inv.Get("/product/:id", inventoryHandler.GetByProduct)
}
