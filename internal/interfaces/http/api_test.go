package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimatica/chemstock-api/internal/application/dto"
	"github.com/quimatica/chemstock-api/internal/application/inventory"
	"github.com/quimatica/chemstock-api/internal/application/usecase"
	apphttp "github.com/quimatica/chemstock-api/internal/interfaces/http"
	"github.com/quimatica/chemstock-api/internal/testutil"
)

// buildTestApp wires the real use cases over the in-memory store, the same
// way cmd/api does over PostgreSQL.
func buildTestApp() *fiber.App {
	store := testutil.NewMemStore()
	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "Server is running"})
	})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(store.TxRunner(), store.ProductRepo()),
		UpdateStock: inventory.NewUpdateStockUseCase(store.TxRunner(), store.ProductRepo()),
		Inventory:   inventory.NewQueryUseCase(store.InventoryRepo(), store.MovementRepo()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "OK", body["status"])
}

func TestProductLifecycleAndStockFlow(t *testing.T) {
	app := buildTestApp()

	// create product A -> 201, balance starts at 0
	resp := doJSON(t, app, http.MethodPost, "/products", fiber.Map{
		"product_name":        "Formaldehyde",
		"cas_number":          "50-00-0",
		"unit_of_measurement": "KG",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	require.NotZero(t, created.ID)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/inventory/product/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inv := decode[dto.InventoryResponse](t, resp)
	assert.True(t, inv.CurrentStock.IsZero())

	// IN 100 -> 0 to 100
	resp = doJSON(t, app, http.MethodPost, "/inventory/update-stock", fiber.Map{
		"product_id":    created.ID,
		"movement_type": "IN",
		"quantity":      100,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	upd := decode[dto.StockUpdateResponse](t, resp)
	assert.True(t, upd.PreviousStock.IsZero())
	assert.True(t, upd.NewStock.Equal(decimal.NewFromInt(100)))

	// OUT 30 -> 100 to 70
	resp = doJSON(t, app, http.MethodPost, "/inventory/update-stock", fiber.Map{
		"product_id":    created.ID,
		"movement_type": "OUT",
		"quantity":      30,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	upd = decode[dto.StockUpdateResponse](t, resp)
	assert.True(t, upd.PreviousStock.Equal(decimal.NewFromInt(100)))
	assert.True(t, upd.NewStock.Equal(decimal.NewFromInt(70)))

	// OUT 1000 -> rejected with the current balance and requested quantity
	resp = doJSON(t, app, http.MethodPost, "/inventory/update-stock", fiber.Map{
		"product_id":    created.ID,
		"movement_type": "OUT",
		"quantity":      1000,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	rejected := decode[dto.InsufficientStockResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", rejected.Code)
	assert.True(t, rejected.CurrentStock.Equal(decimal.NewFromInt(70)))
	assert.True(t, rejected.Requested.Equal(decimal.NewFromInt(1000)))

	// history: exactly two records, newest first
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/inventory/history/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, history, 2)
	assert.Equal(t, "OUT", history[0].MovementType)
	assert.True(t, history[0].NewStock.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "IN", history[1].MovementType)
	assert.True(t, history[1].NewStock.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Formaldehyde", history[0].ProductName)

	// search hits on CAS substring, misses on garbage
	resp = doJSON(t, app, http.MethodGet, "/products/search/50-00", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hits := decode[[]dto.ProductStockResponse](t, resp)
	require.Len(t, hits, 1)
	assert.Equal(t, "Formaldehyde", hits[0].Name)
	assert.True(t, hits[0].CurrentStock.Equal(decimal.NewFromInt(70)))

	resp = doJSON(t, app, http.MethodGet, "/products/search/xyz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.ProductStockResponse](t, resp))

	// delete cascades: product, inventory and history all gone
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/inventory/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.MovementResponse](t, resp))
}

func TestCreateProduct_Validation(t *testing.T) {
	app := buildTestApp()

	// missing fields
	resp := doJSON(t, app, http.MethodPost, "/products", fiber.Map{
		"product_name": "Formaldehyde",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unit outside the enum
	resp = doJSON(t, app, http.MethodPost, "/products", fiber.Map{
		"product_name":        "Formaldehyde",
		"cas_number":          "50-00-0",
		"unit_of_measurement": "Gallon",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// duplicate CAS number
	resp = doJSON(t, app, http.MethodPost, "/products", fiber.Map{
		"product_name":        "Formaldehyde",
		"cas_number":          "50-00-0",
		"unit_of_measurement": "KG",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/products", fiber.Map{
		"product_name":        "Formalin",
		"cas_number":          "50-00-0",
		"unit_of_measurement": "Litre",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_CAS", body.Code)
}

func TestUpdateStock_Validation(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/products", fiber.Map{
		"product_name":        "Acetone",
		"cas_number":          "67-64-1",
		"unit_of_measurement": "Litre",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)

	// movement type outside the enum
	resp = doJSON(t, app, http.MethodPost, "/inventory/update-stock", fiber.Map{
		"product_id":    created.ID,
		"movement_type": "MOVE",
		"quantity":      5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// non-positive quantity
	resp = doJSON(t, app, http.MethodPost, "/inventory/update-stock", fiber.Map{
		"product_id":    created.ID,
		"movement_type": "IN",
		"quantity":      0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown product
	resp = doJSON(t, app, http.MethodPost, "/inventory/update-stock", fiber.Map{
		"product_id":    99999,
		"movement_type": "IN",
		"quantity":      5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProduct_NotFoundAndDuplicate(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPut, "/products/42", fiber.Map{
		"product_name":        "Ghost",
		"cas_number":          "1-11-1",
		"unit_of_measurement": "KG",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, p := range []fiber.Map{
		{"product_name": "Formaldehyde", "cas_number": "50-00-0", "unit_of_measurement": "KG"},
		{"product_name": "Acetone", "cas_number": "67-64-1", "unit_of_measurement": "Litre"},
	} {
		resp = doJSON(t, app, http.MethodPost, "/products", p)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// the second product cannot take the first one's CAS number
	resp = doJSON(t, app, http.MethodPut, "/products/2", fiber.Map{
		"product_name":        "Acetone",
		"cas_number":          "50-00-0",
		"unit_of_measurement": "Litre",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_CAS", body.Code)
}

func TestInventoryList_OrderedByName(t *testing.T) {
	app := buildTestApp()

	for _, p := range []fiber.Map{
		{"product_name": "Formaldehyde", "cas_number": "50-00-0", "unit_of_measurement": "KG"},
		{"product_name": "Acetone", "cas_number": "67-64-1", "unit_of_measurement": "Litre"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/products", p)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/inventory", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.InventoryResponse](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "Acetone", list[0].Name)
	assert.Equal(t, "Formaldehyde", list[1].Name)
}
