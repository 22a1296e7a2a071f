// Package handler exposes the checkout core over a thin JSON HTTP surface.
package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/storesys/checkout/internal/domain/checkout"
	"github.com/storesys/checkout/internal/domain/product"
)

// Handler routes HTTP requests to the checkout service and product catalog.
type Handler struct {
	checkout *checkout.Service
	products product.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(checkoutSvc *checkout.Service, products product.Repository) *Handler {
	return &Handler{checkout: checkoutSvc, products: products}
}

// Register attaches the API routes to the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/checkout", h.FinalizeCheckout)
	mux.HandleFunc("GET /api/product", h.ListProducts)
	mux.HandleFunc("GET /api/product/{id}", h.GetProduct)
}

// writeJSON encodes the given encode func as the response body.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError responds with the standard error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("code")
		e.Int(status)
		e.FieldStart("message")
		e.Str(message)
		e.ObjEnd()
	})
}
