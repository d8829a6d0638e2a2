package domain

import (
	"math"
	"time"
)

// UnknownProductID is the sentinel stored when a checkout item carried no
// usable product identifier.
const UnknownProductID = "unknown"

// Order is a placed order. Created exactly once per checkout and never
// mutated afterward.
type Order struct {
	ID          string      `json:"id"`
	Campus      string      `json:"campus"`
	PickupPoint string      `json:"pickupPoint"`
	Total       int64       `json:"total"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderItem is a single line of an order. Price is the unit price actually
// charged, which may differ from the catalog if the product was not found.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderTotal sums charged price × quantity over the items, rounded to the
// nearest integer currency unit and clamped to [0, MaxInt64]. The upper clamp
// matters: client snapshots are arbitrary finite floats, so the sum can reach
// +Inf or exceed what int64 holds, and a bare conversion would wrap negative.
func OrderTotal(items []OrderItem) int64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	total := math.Round(sum)
	switch {
	case math.IsNaN(total) || total < 0:
		return 0
	case total >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(total)
}
