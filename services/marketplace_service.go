package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/types/cart"
	"ecoTrackAPI/internal/types/product"
)

// MarketplaceService serves the fixed product catalog and runs the simulated
// checkout against the state store's cart.
type MarketplaceService struct {
	state *EcoStateService
}

func NewMarketplaceService(state *EcoStateService) *MarketplaceService {
	return &MarketplaceService{state: state}
}

// GetMarketplace returns the catalog grouped by storefront section.
func (m *MarketplaceService) GetMarketplace() map[string][]product.Product {
	return product.Catalog()
}

// FindProduct looks a product up across all sections.
func (m *MarketplaceService) FindProduct(id string) (product.Product, bool) {
	for _, section := range product.Catalog() {
		for _, p := range section {
			if p.ID == id {
				return p, true
			}
		}
	}
	return product.Product{}, false
}

// Checkout builds a receipt for the current cart and empties it. The order
// is simulated: no points are debited.
func (m *MarketplaceService) Checkout() (*product.Order, error) {
	items, err := m.state.CartItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	order := &product.Order{
		ID:          uuid.New(),
		Items:       items,
		TotalPoints: cart.TotalPoints(items),
		Status:      product.OrderStatusSimulated,
		CreatedAt:   time.Now(),
	}

	if err := m.state.ClearCart(); err != nil {
		return nil, err
	}

	return order, nil
}
