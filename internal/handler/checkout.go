package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/storesys/checkout/internal/domain/cart"
	"github.com/storesys/checkout/internal/domain/checkout"
	"github.com/storesys/checkout/internal/domain/customer"
)

type checkoutRequest struct {
	CartID     string `json:"cartId"`
	CustomerID string `json:"customerId"`
}

// FinalizeCheckout handles POST /api/checkout.
func (h *Handler) FinalizeCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.CartID == "" || req.CustomerID == "" {
		writeError(w, http.StatusBadRequest, "cartId and customerId are required")
		return
	}

	outcome, err := h.checkout.FinalizeCheckout(r.Context(), req.CartID, req.CustomerID)
	if err != nil {
		status, message := mapCheckoutError(err)
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("success")
		e.Bool(outcome.Success)
		e.FieldStart("transactionId")
		e.Str(outcome.TransactionID)
		e.FieldStart("message")
		e.Str(outcome.Message)
		e.ObjEnd()
	})
}

// mapCheckoutError translates domain errors into HTTP status codes. Absent
// resources map to 404; business refusals along the saga map to 409.
func mapCheckoutError(err error) (int, string) {
	var (
		oos *checkout.OutOfStockError
		dfe *checkout.DecrementFailedError
	)
	switch {
	case errors.Is(err, customer.ErrNotFound):
		return http.StatusNotFound, customer.ErrNotFound.Error()
	case errors.Is(err, cart.ErrNotFound):
		return http.StatusNotFound, cart.ErrNotFound.Error()
	case errors.As(err, &oos):
		return http.StatusConflict, oos.Error()
	case errors.Is(err, checkout.ErrPaymentDeclined):
		return http.StatusConflict, checkout.ErrPaymentDeclined.Error()
	case errors.As(err, &dfe):
		return http.StatusConflict, dfe.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
