package product

import (
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/types/cart"
)

// Product is a marketplace entry redeemable for points.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Points      int     `json:"points"`
	Category    string  `json:"category"`
	Image       *string `json:"image,omitempty"`
	IsNew       bool    `json:"is_new,omitempty"`
}

const OrderStatusSimulated = "simulated"

// Order is the receipt produced by the simulated checkout. No points are
// debited; the cart is simply emptied.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	Items       []cart.Item `json:"items"`
	TotalPoints int         `json:"total_points"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
