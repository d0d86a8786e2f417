package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/internal/catalog"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/storage"
	"github.com/Alturino/storefront/cart/internal/view"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/notification"
)

type envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Cart struct {
			Rows []struct {
				ID                int64  `json:"id"`
				Amount            int    `json:"amount"`
				PriceFormatted    string `json:"priceFormatted"`
				DecrementDisabled bool   `json:"decrementDisabled"`
			} `json:"rows"`
			TotalFormatted string `json:"totalFormatted"`
		} `json:"cart"`
		Header struct {
			Size  int    `json:"size"`
			Label string `json:"label"`
		} `json:"header"`
		Notifications []notification.Notification `json:"notifications"`
	} `json:"data"`
}

func newCatalogServer(t *testing.T) *httptest.Server {
	stocks := map[string]int{"1": 2, "2": 5}
	products := map[string]string{
		"1": `{"id":1,"title":"Tênis de Caminhada","price":179.9,"image":"https://example.com/1.jpg"}`,
		"2": `{"id":2,"title":"Tênis VR","price":139.9,"image":"https://example.com/2.jpg"}`,
	}

	router := mux.NewRouter()
	router.HandleFunc("/stock/{id}", func(w http.ResponseWriter, r *http.Request) {
		amount, ok := stocks[mux.Vars(r)["id"]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"id":%s,"amount":%d}`, mux.Vars(r)["id"], amount)
	})
	router.HandleFunc("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		product, ok := products[mux.Vars(r)["id"]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, product)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newRouter(t *testing.T) *mux.Router {
	server := newCatalogServer(t)
	client := catalog.NewClient(config.Catalog{BaseURL: server.URL, Timeout: time.Second})
	svc, err := service.NewCartService(context.Background(), client, storage.NewMemoryStorage())
	require.NoError(t, err)

	router := mux.NewRouter()
	AttachCartController(
		router,
		svc,
		notification.NewNotifier(time.Minute),
		view.NewPriceFormatter(config.Currency{Locale: "pt-BR", Symbol: "R$"}),
	)
	return router
}

func do(t *testing.T, router http.Handler, method string, path string, body string) envelope {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	res := envelope{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, rec.Code, res.StatusCode)
	return res
}

func TestCartController(t *testing.T) {
	router := newRouter(t)

	t.Run("given empty cart should return empty page", func(t *testing.T) {
		res := do(t, router, http.MethodGet, "/cart", "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Empty(t, res.Data.Cart.Rows)
		assert.Equal(t, "R$\u00a00,00", res.Data.Cart.TotalFormatted)
		assert.Equal(t, "0 items", res.Data.Header.Label)
	})

	t.Run("given new product should add it", func(t *testing.T) {
		res := do(t, router, http.MethodPost, "/cart/products", `{"productId":1}`)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		require.Len(t, res.Data.Cart.Rows, 1)
		assert.Equal(t, 1, res.Data.Cart.Rows[0].Amount)
		assert.True(t, res.Data.Cart.Rows[0].DecrementDisabled)
		assert.Equal(t, "R$\u00a0179,90", res.Data.Cart.Rows[0].PriceFormatted)
		assert.Equal(t, "1 item", res.Data.Header.Label)
	})

	t.Run("given amount within stock should update it", func(t *testing.T) {
		res := do(t, router, http.MethodPut, "/cart/products/1", `{"amount":2}`)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, 2, res.Data.Cart.Rows[0].Amount)
		assert.Equal(t, "R$\u00a0359,80", res.Data.Cart.TotalFormatted)
	})

	t.Run("given product at stock should return conflict", func(t *testing.T) {
		res := do(t, router, http.MethodPost, "/cart/products/1/increment", "")
		assert.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, notification.MessageOutOfStock, res.Message)
	})

	t.Run("given decrement should lower amount", func(t *testing.T) {
		res := do(t, router, http.MethodPost, "/cart/products/1/decrement", "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, 1, res.Data.Cart.Rows[0].Amount)
	})

	t.Run("given unknown product should return not found", func(t *testing.T) {
		res := do(t, router, http.MethodPost, "/cart/products", `{"productId":42}`)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, notification.MessageFailedAdd, res.Message)
	})

	t.Run("given invalid body should return bad request", func(t *testing.T) {
		res := do(t, router, http.MethodPost, "/cart/products", `{"productId":0}`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		res = do(t, router, http.MethodPut, "/cart/products/abc", `{"amount":1}`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("given product not in cart should not remove anything", func(t *testing.T) {
		res := do(t, router, http.MethodDelete, "/cart/products/2", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, notification.MessageFailedRemove, res.Message)

		res = do(t, router, http.MethodGet, "/cart/header", "")
		assert.Equal(t, 1, res.Data.Header.Size)
	})

	t.Run("given failures should drain their notifications once", func(t *testing.T) {
		res := do(t, router, http.MethodGet, "/notifications", "")
		assert.Len(t, res.Data.Notifications, 5)
		assert.Equal(t, notification.MessageOutOfStock, res.Data.Notifications[0].Message)

		res = do(t, router, http.MethodGet, "/notifications", "")
		assert.Empty(t, res.Data.Notifications)
	})

	t.Run("given product in cart should remove it", func(t *testing.T) {
		res := do(t, router, http.MethodDelete, "/cart/products/1", "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Empty(t, res.Data.Cart.Rows)
	})
}

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "out of stock",
			err:      fmt.Errorf("failed adding with error=%w", commonErrors.ErrOutOfStock),
			expected: http.StatusConflict,
		},
		{
			name:     "cart entry not found",
			err:      commonErrors.ErrCartEntryNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "stock not found",
			err:      commonErrors.ErrStockNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "invalid product id",
			err:      commonErrors.ErrInvalidProductID,
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, statusCode(tc.err))
		})
	}
}
