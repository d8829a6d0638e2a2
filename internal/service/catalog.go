// Package service implements the marketplace business logic on top of the
// repository and routing layers.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusmarket/marketplace/internal/domain"
	"github.com/campusmarket/marketplace/internal/repository"
)

// maxCatalogRows caps a single catalog listing.
const maxCatalogRows = 60

// CatalogService handles product listing and store seeding.
type CatalogService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
	}
}

// ListProducts returns catalog products matching the filter. The row cap is
// enforced here regardless of what the caller asked for.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	if filter.Limit <= 0 || filter.Limit > maxCatalogRows {
		filter.Limit = maxCatalogRows
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Seed inserts the starter catalog if the store is empty. It is idempotent:
// when any products already exist it reports the current count and does
// nothing. Returns the product count after the call and whether this call
// inserted anything.
func (s *CatalogService) Seed(ctx context.Context) (int, bool, error) {
	count, err := s.products.Count(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "seed skipped, store already populated",
			slog.Int("count", count),
		)
		return count, false, nil
	}

	starters := starterProducts()
	if err := s.products.CreateBatch(ctx, starters); err != nil {
		return 0, false, fmt.Errorf("insert starter products: %w", err)
	}

	s.logger.InfoContext(ctx, "seeded starter catalog",
		slog.Int("count", len(starters)),
	)
	return len(starters), true, nil
}

// starterProducts builds the initial catalog. IDs are generated per seeding
// run; the idempotence guard above keeps reruns from duplicating rows.
func starterProducts() []domain.Product {
	now := time.Now().UTC()
	return []domain.Product{
		{
			ID:        uuid.New().String(),
			Name:      "Wireless Mouse",
			Price:     350,
			Campus:    "SEC",
			Category:  "electronics",
			ImageURL:  "https://images.campusmarket.dev/wireless-mouse.jpg",
			CreatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Calculus Textbook",
			Price:     220,
			Campus:    "SEC",
			Category:  "books",
			ImageURL:  "https://images.campusmarket.dev/calculus-textbook.jpg",
			CreatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Campus Hoodie",
			Price:     480,
			Campus:    "North",
			Category:  "apparel",
			ImageURL:  "https://images.campusmarket.dev/campus-hoodie.jpg",
			CreatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Desk Lamp",
			Price:     150,
			Campus:    "North",
			Category:  "home",
			ImageURL:  "https://images.campusmarket.dev/desk-lamp.jpg",
			CreatedAt: now,
		},
	}
}
