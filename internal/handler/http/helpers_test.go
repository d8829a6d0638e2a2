package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/campusmarket/marketplace/internal/domain"
	"github.com/campusmarket/marketplace/internal/repository"
	"github.com/campusmarket/marketplace/internal/routing"
	"github.com/campusmarket/marketplace/internal/service"
	"github.com/campusmarket/marketplace/pkg/health"
	"github.com/campusmarket/marketplace/pkg/middleware"
)

// ============================================================================
// Mock repositories and routing
// ============================================================================

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type mockDirections struct {
	mock.Mock
}

func (m *mockDirections) Directions(ctx context.Context, from, to domain.Coordinate) (routing.Route, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(routing.Route), args.Error(1)
}

// ============================================================================
// Test server
// ============================================================================

type testDeps struct {
	products *mockProductRepository
	orders   *mockOrderRepository
	routes   *mockDirections
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestRouter assembles the full routing tree over mocked persistence so
// handler tests exercise the real middleware chain.
func newTestRouter(t *testing.T) (http.Handler, *testDeps) {
	t.Helper()

	deps := &testDeps{
		products: new(mockProductRepository),
		orders:   new(mockOrderRepository),
		routes:   new(mockDirections),
	}
	logger := newTestLogger()

	router := NewRouter(RouterDeps{
		Logger:   logger,
		Health:   health.NewHandler(),
		Catalog:  NewCatalogHandler(service.NewCatalogService(deps.products, logger), logger),
		Checkout: NewCheckoutHandler(service.NewCheckoutService(deps.products, deps.orders, logger), logger),
		Estimate: NewEstimateHandler(service.NewEstimateService(deps.routes, logger), logger),
		CORS:     middleware.DefaultCORSConfig(),
	})
	return router, deps
}
