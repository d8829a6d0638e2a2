// Package http wires the marketplace services to their HTTP surface.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusmarket/marketplace/internal/repository"
	"github.com/campusmarket/marketplace/internal/service"
	apperrors "github.com/campusmarket/marketplace/pkg/errors"
	"github.com/campusmarket/marketplace/pkg/httputil"
)

// CatalogHandler serves product listing and seeding endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// List handles GET /api/products. Filters are optional query parameters
// combined with AND semantics; the response is a plain JSON array.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// Seed handles GET /api/seed. Repeated calls are safe; the store is only
// populated when empty.
func (h *CatalogHandler) Seed(w http.ResponseWriter, r *http.Request) {
	count, _, err := h.catalog.Seed(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"count": count,
	})
}

// parseProductFilter reads the supported query parameters. Price bounds must
// be whole non-negative numbers; anything else is rejected rather than
// silently ignored.
func parseProductFilter(r *http.Request) (repository.ProductFilter, error) {
	q := r.URL.Query()
	var filter repository.ProductFilter

	if v := q.Get("campus"); v != "" {
		filter.Campus = &v
	}
	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}

	if v := q.Get("priceMin"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return repository.ProductFilter{}, apperrors.InvalidInput("priceMin must be a non-negative integer")
		}
		filter.MinPrice = &n
	}
	if v := q.Get("priceMax"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return repository.ProductFilter{}, apperrors.InvalidInput("priceMax must be a non-negative integer")
		}
		filter.MaxPrice = &n
	}

	return filter, nil
}
