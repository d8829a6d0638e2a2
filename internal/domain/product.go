package domain

import (
	"time"
)

// Product is a catalog entry. Products are seeded once and read by catalog
// and checkout queries; this service never deletes them.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Campus    string    `json:"campus"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
