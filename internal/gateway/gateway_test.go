package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryClient_CheckAvailability(t *testing.T) {
	var gotPath string
	var gotBody inventoryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(availabilityResponse{
			Available:             false,
			UnavailableProductIDs: []string{"p2"},
		})
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, time.Second)
	got, err := c.CheckAvailability(context.Background(), []string{"p1", "p2"}, []int{1, 3})

	require.NoError(t, err)
	assert.Equal(t, "/availability", gotPath)
	assert.Equal(t, []string{"p1", "p2"}, gotBody.ProductIDs)
	assert.Equal(t, []int{1, 3}, gotBody.Quantities)
	assert.False(t, got.Available)
	assert.Equal(t, []string{"p2"}, got.UnavailableProductIDs)
}

func TestInventoryClient_Decrement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/decrement", r.URL.Path)
		_ = json.NewEncoder(w).Encode(decrementResponse{Succeeded: true})
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, time.Second)
	got, err := c.Decrement(context.Background(), []string{"p1"}, []int{2})

	require.NoError(t, err)
	assert.True(t, got.Succeeded)
}

func TestInventoryClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, time.Second)
	_, err := c.CheckAvailability(context.Background(), []string{"p1"}, []int{1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestPaymentClient_Authorize(t *testing.T) {
	var gotBody authorizeRequest
	var gotIdempotencyKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/authorize", r.URL.Path)
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(authorizeResponse{
			Authorized:    true,
			TransactionID: "tx-99",
		})
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, time.Second)
	got, err := c.Authorize(context.Background(), "cust-1", 250.00)

	require.NoError(t, err)
	assert.True(t, got.Authorized)
	assert.Equal(t, "tx-99", got.TransactionID)
	assert.Equal(t, "cust-1", gotBody.CustomerID)
	assert.InDelta(t, 250.00, gotBody.Amount, 0.001)
	assert.NotEmpty(t, gotIdempotencyKey)
}

func TestPaymentClient_Cancel(t *testing.T) {
	var gotBody cancelRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cancel", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, time.Second)
	err := c.Cancel(context.Background(), "cust-1", "tx-99")

	require.NoError(t, err)
	assert.Equal(t, "tx-99", gotBody.TransactionID)
	assert.Equal(t, "cust-1", gotBody.CustomerID)
}

func TestPaymentClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewPaymentClient(srv.URL, time.Second)
	_, err := c.Authorize(ctx, "cust-1", 10)

	require.Error(t, err)
}
