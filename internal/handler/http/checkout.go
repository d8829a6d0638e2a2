package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusmarket/marketplace/internal/service"
	apperrors "github.com/campusmarket/marketplace/pkg/errors"
	"github.com/campusmarket/marketplace/pkg/httputil"
)

// maxCheckoutBodyBytes caps the checkout payload size.
const maxCheckoutBodyBytes = 1 << 20

// cartShapeHint tells callers which payload shapes checkout accepts.
const cartShapeHint = `send items as [...], {"items":[...]}, or {"cart":[...]}`

// CheckoutHandler serves cart checkout and order lookup endpoints.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// Checkout handles POST /api/cart/checkout. The raw body is handed to the
// service untouched so the tolerant parser sees exactly what the client sent.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCheckoutBodyBytes)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("unable to read request body"), h.logger)
		return
	}

	orderID, err := h.checkout.Checkout(r.Context(), raw)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyCart) {
			h.writeCartDiagnostic(w, err, raw)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"orderId": orderID,
	})
}

// GetOrder handles GET /api/orders/{id}.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.checkout.GetOrder(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, order)
}

// writeCartDiagnostic writes the 422 rejection, echoing the offending payload
// so clients can see what the server actually received. Bodies that are not
// valid JSON are echoed as a string.
func (h *CheckoutHandler) writeCartDiagnostic(w http.ResponseWriter, err error, raw []byte) {
	message := "cart is empty"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	var received any
	if jsonErr := json.Unmarshal(raw, &received); jsonErr != nil {
		received = string(raw)
	}

	httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.ErrorBody{
		Error:    message,
		Hint:     cartShapeHint,
		Received: received,
	})
}
