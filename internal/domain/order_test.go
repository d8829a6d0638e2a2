package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  int64
	}{
		{
			name:  "empty cart totals zero",
			items: nil,
			want:  0,
		},
		{
			name: "single line",
			items: []OrderItem{
				{ProductID: "p1", Quantity: 2, Price: 10},
			},
			want: 20,
		},
		{
			name: "multiple lines sum",
			items: []OrderItem{
				{ProductID: "p1", Quantity: 2, Price: 10},
				{ProductID: "p2", Quantity: 1, Price: 5.5},
			},
			want: 26,
		},
		{
			name: "fractional total rounds to nearest",
			items: []OrderItem{
				{ProductID: "p1", Quantity: 3, Price: 1.15},
			},
			want: 3,
		},
		{
			name: "negative snapshot can drag total below zero, floored",
			items: []OrderItem{
				{ProductID: "p1", Quantity: 1, Price: 5},
				{ProductID: "p2", Quantity: 2, Price: -10},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderTotal(tt.items))
		})
	}
}

func TestOrderTotal_OverflowClampsToMaxInt64(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
	}{
		{
			// Sum overflows float64 entirely.
			name: "infinite sum",
			items: []OrderItem{
				{ProductID: "p1", Quantity: 2, Price: math.MaxFloat64},
			},
		},
		{
			// Finite sum, but beyond what int64 holds.
			name: "finite sum above MaxInt64",
			items: []OrderItem{
				{ProductID: "p1", Quantity: 1, Price: 1e19},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := OrderTotal(tt.items)
			assert.Equal(t, int64(math.MaxInt64), total)
			assert.GreaterOrEqual(t, total, int64(0))
		})
	}
}

func TestOrderTotal_HugeSnapshotFromPayloadStaysNonNegative(t *testing.T) {
	// A maximal finite float is a valid JSON number, survives cart
	// normalization as a usable snapshot, and must not wrap the total
	// negative.
	cart, err := ParseCart([]byte(`[{"productId":"p1","qty":2,"price":1.7976931348623157e308}]`))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.True(t, cart.Items[0].SnapshotUsable())

	item := OrderItem{
		ProductID: cart.Items[0].ProductID,
		Quantity:  cart.Items[0].EffectiveQuantity(),
		Price:     cart.Items[0].Snapshot,
	}

	assert.Equal(t, int64(math.MaxInt64), OrderTotal([]OrderItem{item}))
}
