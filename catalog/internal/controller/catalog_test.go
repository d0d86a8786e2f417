package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/catalog/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
)

type fakeCatalogService struct {
	products map[int64]response.Product
	stocks   map[int64]int
	err      error
}

func (f fakeCatalogService) FindProducts(c context.Context) ([]response.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	products := []response.Product{}
	for id := int64(1); id <= int64(len(f.products)); id++ {
		products = append(products, f.products[id])
	}
	return products, nil
}

func (f fakeCatalogService) FindProductById(c context.Context, productID int64) (response.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return response.Product{}, fmt.Errorf("failed with error=%w", commonErrors.ErrProductNotFound)
	}
	return product, nil
}

func (f fakeCatalogService) FindStockByProductId(c context.Context, productID int64) (response.Stock, error) {
	amount, ok := f.stocks[productID]
	if !ok {
		return response.Stock{}, fmt.Errorf("failed with error=%w", commonErrors.ErrStockNotFound)
	}
	return response.Stock{ID: productID, Amount: amount}, nil
}

func newRouter(svc CatalogService) *mux.Router {
	router := mux.NewRouter()
	AttachCatalogController(router, svc)
	return router
}

func fakeService() fakeCatalogService {
	return fakeCatalogService{
		products: map[int64]response.Product{
			1: {ID: 1, Title: "Tênis de Caminhada", Price: decimal.RequireFromString("179.9"), Image: "a.jpg"},
			2: {ID: 2, Title: "Tênis VR", Price: decimal.RequireFromString("139.9"), Image: "b.jpg"},
		},
		stocks: map[int64]int{1: 3},
	}
}

func TestCatalogController(t *testing.T) {
	testCases := []struct {
		name         string
		path         string
		service      fakeCatalogService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "given known product should return bare product",
			path:         "/products/1",
			service:      fakeService(),
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"title":"Tênis de Caminhada","price":"179.9","image":"a.jpg"}`,
		},
		{
			name:         "given known stock should return bare stock",
			path:         "/stock/1",
			service:      fakeService(),
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"amount":3}`,
		},
		{
			name:         "given unknown product should return not found",
			path:         "/products/9",
			service:      fakeService(),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "given unknown stock should return not found",
			path:         "/stock/2",
			service:      fakeService(),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "given invalid id should return bad request",
			path:         "/stock/abc",
			service:      fakeService(),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "given database failure should return internal server error",
			path:         "/products",
			service:      fakeCatalogService{err: assert.AnError},
			expectedCode: http.StatusInternalServerError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(tc.service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
				return
			}
			body := map[string]interface{}{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "failed", body["status"])
			assert.EqualValues(t, tc.expectedCode, body["statusCode"])
		})
	}
}

func TestCatalogControllerFindProducts(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(fakeService()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	products := []response.Product{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[1].ID)
}
