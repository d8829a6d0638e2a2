package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/campusmarket/marketplace/pkg/errors"
	"github.com/campusmarket/marketplace/pkg/logger"
)

// ErrorBody is the flat JSON error shape used across the API.
// Every error response carries at least the error field; checkout
// diagnostics additionally carry hint and received.
type ErrorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Received any    `json:"received,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured error response based on the error type.
// AppErrors map to their declared status with their message in the error
// field. Anything else becomes a 500 whose message field carries the
// underlying error text. 5xx responses are logged, preferring the
// request-scoped logger over the fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
		WriteJSON(w, appErr.Status, ErrorBody{Error: appErr.Message})
		return
	}

	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	WriteJSON(w, http.StatusInternalServerError, ErrorBody{
		Error:   "internal error",
		Message: err.Error(),
	})
}
