package http

import (
	"log/slog"
	"net/http"

	"github.com/campusmarket/marketplace/internal/service"
	apperrors "github.com/campusmarket/marketplace/pkg/errors"
	"github.com/campusmarket/marketplace/pkg/httputil"
	"github.com/campusmarket/marketplace/pkg/validator"
)

// EstimateHandler serves the delivery estimate endpoint.
type EstimateHandler struct {
	estimates *service.EstimateService
	logger    *slog.Logger
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(estimates *service.EstimateService, logger *slog.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimates: estimates,
		logger:    logger,
	}
}

type estimateQuery struct {
	From string `validate:"required"`
	To   string `validate:"required"`
}

// Estimate handles GET /api/estimate?from=...&to=... . Both parameters are
// required pickup point labels. Provider trouble never surfaces here; the
// service degrades to a fallback quote on its own.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	q := estimateQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := validator.Validate(q); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
		return
	}

	estimate, err := h.estimates.Estimate(r.Context(), q.From, q.To)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, estimate)
}
