package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro-kart/internal/catalog"
	"bistro-kart/internal/handler"
	"bistro-kart/internal/model"
	"bistro-kart/internal/notify"
	"bistro-kart/internal/repository"
	"bistro-kart/internal/router"
	"bistro-kart/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShop() model.Shop {
	return model.Shop{
		ShopID:   "s001",
		ShopName: "Bistro Test",
		Products: []model.Product{
			{ID: 1, Name: "Croissant", Price: decimal.RequireFromString("2.50"), Currency: "EUR", Category: "viennoiserie", Stock: 10},
			{ID: 2, Name: "Café crème", Price: decimal.RequireFromString("3.20"), Currency: "EUR", Category: "boisson", Stock: 5},
			{ID: 3, Name: "Quiche", Price: decimal.RequireFromString("8.90"), Currency: "EUR", Category: "plat", Stock: 0},
		},
	}
}

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	cat, err := catalog.New(testShop())
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	catalogService := service.NewCatalogService(cat, logger)
	orderService := service.NewOrderService(orderRepo, notify.NewNopNotifier(logger), logger)

	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	return router.New(catalogHandler, orderHandler, router.Options{}, logger)
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"shopId":   "s001",
		"shopName": "Bistro Test",
		"fullName": "Jeanne Martin",
		"email":    "jeanne@example.com",
		"phone":    "0601020304",
		"cart": []map[string]interface{}{
			{"productId": 1, "name": "Croissant", "unitPrice": 2.5, "qty": 2},
		},
		"totals": map[string]interface{}{"ht": 5, "vat": 1, "ttc": 6},
	}
}

func postOrder(t *testing.T, server http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

func TestCatalogAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/menu returns the shop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var shop model.Shop
		require.NoError(t, json.NewDecoder(w.Body).Decode(&shop))
		assert.Equal(t, "s001", shop.ShopID)
		assert.Len(t, shop.Products, 3)
	})

	t.Run("GET /api/products filters by category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products?category=boisson", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		require.Len(t, products, 1)
		assert.Equal(t, 2, products[0].ID)
	})

	t.Run("GET /api/products/{id} returns 404 for unknown product", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/99", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("POST /api/orders creates order and GET returns it", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := postOrder(t, server, validOrderBody())
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.OrderCreated
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+created.ID, nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var order model.OrderRecord
		require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
		assert.Equal(t, created.ID, order.ID.String())
		assert.True(t, created.CreatedAt.Equal(order.CreatedAt),
			"created %s, stored %s", created.CreatedAt, order.CreatedAt)
		assert.Equal(t, "s001", order.ShopID)
		assert.Equal(t, "Jeanne Martin", order.FullName)
		assert.Equal(t, "5.00", order.HT.StringFixed(2))
		assert.Equal(t, "1.00", order.VAT.StringFixed(2))
		assert.Equal(t, "6.00", order.TTC.StringFixed(2))

		var lines []model.CartLine
		require.NoError(t, json.Unmarshal(order.Cart, &lines))
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Qty)
	})

	t.Run("POST /api/orders without totals.vat returns 422 and stores nothing", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := validOrderBody()
		body["totals"] = map[string]interface{}{"ht": 5, "ttc": 6}

		w := postOrder(t, server, body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeValidationFailed, resp.Error)
		assert.Contains(t, resp.Fields, "totals.vat")
		assert.NotEmpty(t, resp.CorrelationID)
		assert.Equal(t, 0, CountOrders(t, testDB.Pool))
	})

	t.Run("POST /api/orders with malformed JSON returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("identical submissions create distinct orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		first := postOrder(t, server, validOrderBody())
		second := postOrder(t, server, validOrderBody())
		require.Equal(t, http.StatusCreated, first.Code)
		require.Equal(t, http.StatusCreated, second.Code)

		var a, b model.OrderCreated
		require.NoError(t, json.NewDecoder(first.Body).Decode(&a))
		require.NoError(t, json.NewDecoder(second.Body).Decode(&b))
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, 2, CountOrders(t, testDB.Pool))
	})

	t.Run("GET /api/orders/{id} returns 404 for unknown order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/00000000-0000-0000-0000-000000000000", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}
