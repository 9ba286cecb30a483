package handlers

import (
	"net/http"

	"ecoTrackAPI/services"
)

type MarketplaceHandler struct {
	marketplaceService *services.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService *services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
	}
}

func (h *MarketplaceHandler) GetMarketplace(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.marketplaceService.GetMarketplace())
}
