package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"ecoTrackAPI/internal/types/cart"
	"ecoTrackAPI/services"
)

type CartHandler struct {
	state       *services.EcoStateService
	marketplace *services.MarketplaceService
}

func NewCartHandler(state *services.EcoStateService, marketplace *services.MarketplaceService) *CartHandler {
	return &CartHandler{
		state:       state,
		marketplace: marketplace,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.state.CartItems()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	total, err := h.state.TotalCartPoints()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"items":        items,
		"total_points": total,
	})
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cart.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, ok := h.marketplace.FindProduct(req.ProductID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.state.AddToCart(p); err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.GetCart(w, r)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req cart.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.state.UpdateCartItemQuantity(id, req.Quantity); err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.GetCart(w, r)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.state.RemoveFromCart(id); err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.GetCart(w, r)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.state.ClearCart(); err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.GetCart(w, r)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.marketplace.Checkout()
	if errors.Is(err, services.ErrNotInitialized) {
		respondWithStoreError(w, err)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}
