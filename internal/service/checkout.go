package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusmarket/marketplace/internal/domain"
	"github.com/campusmarket/marketplace/internal/repository"
	apperrors "github.com/campusmarket/marketplace/pkg/errors"
)

// CheckoutService reconciles loosely-shaped cart payloads into priced orders.
type CheckoutService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// Checkout normalizes the raw payload, reconciles every line against catalog
// prices, persists the order, and returns its id. A payload that cannot be
// interpreted as a cart, or that yields zero items, is rejected with a 422
// error.
func (s *CheckoutService) Checkout(ctx context.Context, raw []byte) (string, error) {
	cart, err := domain.ParseCart(raw)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedCart) {
			return "", apperrors.EmptyCart("cart payload not understood")
		}
		return "", fmt.Errorf("parse cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return "", apperrors.EmptyCart("cart is empty")
	}

	catalog, err := s.lookupCatalogPrices(ctx, cart.Items)
	if err != nil {
		return "", err
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, s.reconcileLine(ctx, line, catalog))
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		Campus:      cart.Campus,
		PickupPoint: cart.PickupPoint,
		Total:       domain.OrderTotal(items),
		Items:       items,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Int64("total", order.Total),
	)
	return order.ID, nil
}

// GetOrder retrieves a previously placed order.
func (s *CheckoutService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// lookupCatalogPrices batch-fetches the catalog rows for every distinct
// product id referenced by the cart.
func (s *CheckoutService) lookupCatalogPrices(ctx context.Context, items []domain.CartItem) (map[string]domain.Product, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}

	catalog, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup catalog prices: %w", err)
	}
	return catalog, nil
}

// reconcileLine resolves the unit price for a single cart line. The catalog
// price wins whenever the product exists; otherwise the client snapshot is
// used if usable, else zero. Lines without any product identifier are kept
// under the "unknown" sentinel so the order still records them.
func (s *CheckoutService) reconcileLine(ctx context.Context, line domain.CartItem, catalog map[string]domain.Product) domain.OrderItem {
	pid := line.ProductID
	var price float64

	switch {
	case pid == "":
		pid = domain.UnknownProductID
		if line.SnapshotUsable() {
			price = line.Snapshot
		}
	default:
		if p, ok := catalog[pid]; ok {
			price = float64(p.Price)
		} else if line.SnapshotUsable() {
			price = line.Snapshot
			s.logger.DebugContext(ctx, "product not in catalog, using client snapshot",
				slog.String("product_id", pid),
			)
		}
	}

	return domain.OrderItem{
		ProductID: pid,
		Quantity:  line.EffectiveQuantity(),
		Price:     price,
	}
}
