package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	chtype "ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/services"
)

type ChallengeHandler struct {
	state *services.EcoStateService
}

func NewChallengeHandler(state *services.EcoStateService) *ChallengeHandler {
	return &ChallengeHandler{
		state: state,
	}
}

// GetChallenges lists the roster. ?filter=active|available|completed selects
// a derived membership; anything else returns everything.
func (h *ChallengeHandler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	var challenges []chtype.Challenge
	var err error

	switch r.URL.Query().Get("filter") {
	case "active":
		challenges, err = h.state.ActiveChallenges()
	case "available":
		challenges, err = h.state.AvailableChallenges()
	case "completed":
		challenges, err = h.state.CompletedChallenges()
	default:
		challenges, err = h.state.Challenges()
	}

	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.state.StartChallenge(id); err != nil {
		respondWithStoreError(w, err)
		return
	}

	// Unknown ids are a silent no-op, so this always reports success.
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "started", "id": id})
}

func (h *ChallengeHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req chtype.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.state.UpdateChallengeProgress(id, req.Progress); err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "updated", "id": id})
}

func (h *ChallengeHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.state.CompleteChallenge(id); err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "completed", "id": id})
}
