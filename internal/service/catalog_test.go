package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campusmarket/marketplace/internal/domain"
	"github.com/campusmarket/marketplace/internal/repository"
)

func newCatalogService(products *mockProductRepository) *CatalogService {
	return NewCatalogService(products, newTestLogger())
}

func TestListProducts_DefaultLimit(t *testing.T) {
	products := new(mockProductRepository)
	svc := newCatalogService(products)

	products.On("List", mock.Anything, repository.ProductFilter{Limit: 60}).
		Return([]domain.Product{{ID: "p1"}}, nil)

	got, err := svc.ListProducts(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	products.AssertExpectations(t)
}

func TestListProducts_LimitCapped(t *testing.T) {
	products := new(mockProductRepository)
	svc := newCatalogService(products)

	products.On("List", mock.Anything, repository.ProductFilter{Limit: 60}).
		Return([]domain.Product{}, nil)

	_, err := svc.ListProducts(context.Background(), repository.ProductFilter{Limit: 500})
	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestListProducts_FiltersPassedThrough(t *testing.T) {
	products := new(mockProductRepository)
	svc := newCatalogService(products)

	campus := "SEC"
	minPrice := int64(100)
	want := repository.ProductFilter{Campus: &campus, MinPrice: &minPrice, Limit: 10}

	products.On("List", mock.Anything, want).Return([]domain.Product{}, nil)

	_, err := svc.ListProducts(context.Background(), want)
	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestSeed_EmptyStoreInsertsStarters(t *testing.T) {
	products := new(mockProductRepository)
	svc := newCatalogService(products)

	products.On("Count", mock.Anything).Return(0, nil)
	products.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ps []domain.Product) bool {
		return len(ps) == 4
	})).Return(nil)

	count, seeded, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, 4, count)
	products.AssertExpectations(t)
}

func TestSeed_PopulatedStoreIsNoOp(t *testing.T) {
	products := new(mockProductRepository)
	svc := newCatalogService(products)

	products.On("Count", mock.Anything).Return(7, nil)

	count, seeded, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, 7, count)
	products.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestSeed_CountErrorPropagates(t *testing.T) {
	products := new(mockProductRepository)
	svc := newCatalogService(products)

	products.On("Count", mock.Anything).Return(0, errors.New("connection refused"))

	_, _, err := svc.Seed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count products")
}

func TestSeed_StartersHaveDistinctIDs(t *testing.T) {
	starters := starterProducts()

	seen := make(map[string]struct{}, len(starters))
	for _, p := range starters {
		require.NotEmpty(t, p.ID)
		require.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.Price, int64(0))
		_, dup := seen[p.ID]
		assert.False(t, dup, "duplicate starter id %s", p.ID)
		seen[p.ID] = struct{}{}
	}
}
