package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ecoTrackAPI/internal/types/impact"
	"ecoTrackAPI/internal/types/survey"
	"ecoTrackAPI/services"
)

type StateHandler struct {
	state *services.EcoStateService
}

func NewStateHandler(state *services.EcoStateService) *StateHandler {
	return &StateHandler{
		state: state,
	}
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.state.State()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

func (h *StateHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	answers, err := h.state.Survey()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, answers)
}

func (h *StateHandler) UpdateSurvey(w http.ResponseWriter, r *http.Request) {
	var answers survey.Answers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.state.SetSurvey(answers); err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, answers)
}

func (h *StateHandler) GetFootprint(w http.ResponseWriter, r *http.Request) {
	fp, err := h.state.Footprint()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	// A null footprint tells the client to redirect to the calculator.
	respondWithJSON(w, http.StatusOK, map[string]any{"footprint": fp})
}

func (h *StateHandler) CalculateFootprint(w http.ResponseWriter, r *http.Request) {
	fp, err := h.state.CalculateFootprint()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, fp)
}

type addPointsRequest struct {
	Amount int `json:"amount"`
}

func (h *StateHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	var req addPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.state.AddPoints(req.Amount); err != nil {
		respondWithStoreError(w, err)
		return
	}

	points, err := h.state.Points()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"points": points})
}

func (h *StateHandler) IncrementStreak(w http.ResponseWriter, r *http.Request) {
	if err := h.state.IncrementStreak(); err != nil {
		respondWithStoreError(w, err)
		return
	}

	info, err := h.state.StreakInfo()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (h *StateHandler) ResetStreak(w http.ResponseWriter, r *http.Request) {
	if err := h.state.ResetStreak(); err != nil {
		respondWithStoreError(w, err)
		return
	}

	info, err := h.state.StreakInfo()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (h *StateHandler) UpdateEcoImpact(w http.ResponseWriter, r *http.Request) {
	var req impact.UpdateImpactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.state.UpdateEcoImpact(req.Trees, req.Water, req.CO2); err != nil {
		respondWithStoreError(w, err)
		return
	}

	current, err := h.state.EcoImpact()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, current)
}

func (h *StateHandler) ClaimResultsBonus(w http.ResponseWriter, r *http.Request) {
	if err := h.state.ClaimResultsBonus(); err != nil {
		respondWithStoreError(w, err)
		return
	}

	state, err := h.state.State()
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

// StreamStateEvents pushes a server-sent event whenever any slice changes.
// Clients re-fetch whatever they render; the event carries no payload.
func (h *StateHandler) StreamStateEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := make(chan struct{}, 1)
	subID := h.state.Subscribe(func() {
		select {
		case events <- struct{}{}:
		default:
		}
	})
	defer h.state.Unsubscribe(subID)

	fmt.Fprint(w, "event: state\ndata: changed\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-events:
			fmt.Fprint(w, "event: state\ndata: changed\n\n")
			flusher.Flush()
		}
	}
}

func respondWithStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNotInitialized) {
		respondWithError(w, http.StatusServiceUnavailable, "State store is not initialized")
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
