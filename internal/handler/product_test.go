package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storesys/checkout/internal/domain/product"
)

func newProductServer(list []product.Product) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(nil, &stubProducts{list: list}).Register(mux)
	return mux
}

func doGet(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	mux := newProductServer([]product.Product{
		{ID: "p1", Name: "Monitor", Price: decimal.RequireFromString("899.90"), Weight: 4.2},
		{ID: "p2", Name: "Vase", Price: decimal.RequireFromString("35.00"), Weight: 1.1, Fragile: true},
	})

	rec := doGet(t, mux, "/api/product")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0]["id"])
	assert.Equal(t, "Monitor", got[0]["name"])
	assert.InDelta(t, 899.90, got[0]["price"], 0.001)
	assert.Equal(t, true, got[1]["fragile"])
}

func TestListProductsEmpty(t *testing.T) {
	rec := doGet(t, newProductServer(nil), "/api/product")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	mux := newProductServer([]product.Product{
		{ID: "p1", Name: "Monitor", Price: decimal.RequireFromString("899.90"), Weight: 4.2},
	})

	rec := doGet(t, mux, "/api/product/p1")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Monitor", got["name"])
	assert.InDelta(t, 4.2, got["weight"], 0.001)
}

func TestGetProductNotFound(t *testing.T) {
	rec := doGet(t, newProductServer(nil), "/api/product/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(http.StatusNotFound), got["code"])
}
