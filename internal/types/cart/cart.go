package cart

// Item is one quantity-keyed cart line. Quantity never drops below 1; the
// only way to zero out a line is removing it.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Points   int     `json:"points"` // point cost per unit
	Image    *string `json:"image,omitempty"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

// TotalPoints recomputes the cart total from the lines. It is intentionally
// never cached anywhere so it cannot drift from the canonical lines.
func TotalPoints(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Points * item.Quantity
	}
	return total
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
