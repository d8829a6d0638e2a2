package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusmarket/marketplace/pkg/health"
	"github.com/campusmarket/marketplace/pkg/middleware"
)

// RouterDeps holds everything the router needs.
type RouterDeps struct {
	Logger   *slog.Logger
	Health   *health.Handler
	Catalog  *CatalogHandler
	Checkout *CheckoutHandler
	Estimate *EstimateHandler
	CORS     middleware.CORSConfig
}

// NewRouter builds the HTTP routing tree. CORS runs outermost so preflight
// requests are answered before any other middleware touches them.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("marketplace"))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("marketplace backend up"))
	})

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/seed", deps.Catalog.Seed)
		r.Get("/products", deps.Catalog.List)
		r.Get("/estimate", deps.Estimate.Estimate)
		r.Post("/cart/checkout", deps.Checkout.Checkout)
		r.Get("/orders/{id}", deps.Checkout.GetOrder)
	})

	return r
}
