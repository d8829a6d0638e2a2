package repository

import (
	"context"

	"github.com/campusmarket/marketplace/internal/domain"
)

// ProductFilter defines filter criteria for listing catalog products.
// Campus and category are exact matches; the price range is inclusive and
// either bound may be open-ended. All filters compose with AND semantics.
type ProductFilter struct {
	Campus   *string
	Category *string
	MinPrice *int64
	MaxPrice *int64
	Limit    int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Count returns the number of products in the store.
	Count(ctx context.Context) (int, error)

	// CreateBatch inserts the given products in a single transaction.
	CreateBatch(ctx context.Context, products []domain.Product) error

	// List returns products matching the given filter, store-default order.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// ListByIDs batch-fetches products by id, keyed by id. IDs with no
	// matching product are simply absent from the result.
	ListByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts an order and all of its items atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its ID, eagerly loading its items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
