package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ecoTrackAPI/internal/kv"
	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/internal/types/product"
	"ecoTrackAPI/internal/types/survey"
	"ecoTrackAPI/services"
)

func newTestService(t *testing.T, store kv.Store) *services.EcoStateService {
	t.Helper()

	svc := services.NewEcoStateService(store)
	svc.Hydrate(context.Background())
	t.Cleanup(svc.Close)
	return svc
}

func TestOperationsBeforeHydrateFail(t *testing.T) {
	svc := services.NewEcoStateService(nil)

	if _, err := svc.Points(); !errors.Is(err, services.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from read, got %v", err)
	}
	if err := svc.AddPoints(10); !errors.Is(err, services.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from mutation, got %v", err)
	}
	if _, err := svc.State(); !errors.Is(err, services.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from snapshot, got %v", err)
	}
}

func TestHydrateDefaults(t *testing.T) {
	svc := newTestService(t, nil)

	state, err := svc.State()
	if err != nil {
		t.Fatalf("Failed to read state: %v", err)
	}

	if state.Points != 0 || state.Streak.CurrentStreak != 0 || state.Streak.LongestStreak != 0 {
		t.Error("Expected zeroed counters on first activation")
	}
	if state.Footprint != nil {
		t.Error("Expected nil footprint before any calculation")
	}
	if len(state.Challenges) != 8 {
		t.Fatalf("Expected 8 seed challenges, got %d", len(state.Challenges))
	}
	if len(state.CartItems) != 0 {
		t.Error("Expected empty cart")
	}

	available, _ := svc.AvailableChallenges()
	if len(available) != 8 {
		t.Errorf("Expected all seed challenges available, got %d", len(available))
	}
}

func TestCalculateFootprintAwardsBonusPerCall(t *testing.T) {
	svc := newTestService(t, nil)

	answers := survey.Answers{
		Transportation: survey.TransportCar,
		Energy:         survey.EnergyElectricity,
		Diet:           survey.DietMeatHeavy,
		Consumption:    survey.ConsumptionAverage,
	}
	if err := svc.SetSurvey(answers); err != nil {
		t.Fatalf("Failed to set survey: %v", err)
	}

	fp, err := svc.CalculateFootprint()
	if err != nil {
		t.Fatalf("Failed to calculate footprint: %v", err)
	}
	if fp.Total != 13.7 {
		t.Errorf("Expected total 13.7, got %v", fp.Total)
	}

	// The bonus is per call, not per survey: recalculating awards again.
	if _, err := svc.CalculateFootprint(); err != nil {
		t.Fatalf("Failed to recalculate footprint: %v", err)
	}

	points, _ := svc.Points()
	if points != 200 {
		t.Errorf("Expected 200 points after two calculations, got %d", points)
	}

	stored, err := svc.Footprint()
	if err != nil {
		t.Fatalf("Failed to read footprint: %v", err)
	}
	if stored == nil || stored.Total != 13.7 {
		t.Errorf("Expected stored footprint 13.7, got %+v", stored)
	}
}

func TestStartChallengeIncrementsStreak(t *testing.T) {
	svc := newTestService(t, nil)

	if err := svc.StartChallenge("challenge-1"); err != nil {
		t.Fatalf("Failed to start challenge: %v", err)
	}

	info, _ := svc.StreakInfo()
	if info.CurrentStreak != 1 || info.LongestStreak != 1 {
		t.Errorf("Expected streak 1/1, got %d/%d", info.CurrentStreak, info.LongestStreak)
	}

	if err := svc.StartChallenge("challenge-2"); err != nil {
		t.Fatalf("Failed to start challenge: %v", err)
	}
	if err := svc.ResetStreak(); err != nil {
		t.Fatalf("Failed to reset streak: %v", err)
	}

	info, _ = svc.StreakInfo()
	if info.CurrentStreak != 0 {
		t.Errorf("Expected current streak 0 after reset, got %d", info.CurrentStreak)
	}
	if info.LongestStreak != 2 {
		t.Errorf("Expected longest streak 2 to survive the reset, got %d", info.LongestStreak)
	}

	// Unknown ids are a silent no-op and must not touch the streak.
	if err := svc.StartChallenge("challenge-999"); err != nil {
		t.Fatalf("Expected silent no-op for unknown id, got %v", err)
	}
	info, _ = svc.StreakInfo()
	if info.CurrentStreak != 0 {
		t.Errorf("Expected streak untouched by unknown id, got %d", info.CurrentStreak)
	}
}

func TestStartRearmsCompletedChallenge(t *testing.T) {
	svc := newTestService(t, nil)

	svc.StartChallenge("challenge-1")
	svc.CompleteChallenge("challenge-1")

	completed, _ := svc.CompletedChallenges()
	if len(completed) != 1 {
		t.Fatalf("Expected 1 completed challenge, got %d", len(completed))
	}

	// Starting again re-arms: progress and start date reset.
	svc.StartChallenge("challenge-1")

	active, _ := svc.ActiveChallenges()
	if len(active) != 1 || active[0].ID != "challenge-1" {
		t.Fatalf("Expected challenge-1 active after re-arm, got %+v", active)
	}
	if active[0].Progress != 0 {
		t.Errorf("Expected progress reset to 0, got %d", active[0].Progress)
	}
}

func TestUpdateProgressClampsAndNeverAwards(t *testing.T) {
	svc := newTestService(t, nil)

	svc.StartChallenge("challenge-1")
	pointsBefore, _ := svc.Points()

	if err := svc.UpdateChallengeProgress("challenge-1", 150); err != nil {
		t.Fatalf("Failed to update progress: %v", err)
	}

	completed, _ := svc.CompletedChallenges()
	if len(completed) != 1 || completed[0].Progress != 100 {
		t.Fatalf("Expected progress clamped to 100, got %+v", completed)
	}

	// Reaching 100 via progress updates fires no completion side effects.
	pointsAfter, _ := svc.Points()
	if pointsAfter != pointsBefore {
		t.Errorf("Expected no points from progress updates, got %d -> %d", pointsBefore, pointsAfter)
	}

	if err := svc.UpdateChallengeProgress("challenge-1", -5); err != nil {
		t.Fatalf("Failed to update progress: %v", err)
	}
	all, _ := svc.Challenges()
	for _, c := range all {
		if c.ID == "challenge-1" && c.Progress != 0 {
			t.Errorf("Expected negative progress clamped to 0, got %d", c.Progress)
		}
	}
}

func TestCompleteChallengeDoubleAwards(t *testing.T) {
	svc := newTestService(t, nil)

	// Documents the current contract: complete is NOT idempotent and the
	// caller is responsible for not firing it twice.
	svc.CompleteChallenge("challenge-4")
	svc.CompleteChallenge("challenge-4")

	points, _ := svc.Points()
	if points != 400 {
		t.Errorf("Expected 400 points from double completion, got %d", points)
	}

	imp, _ := svc.EcoImpact()
	if imp.TreesSaved != 2 || imp.WaterSaved != 60 || imp.CO2Reduced != 40 {
		t.Errorf("Expected doubled impact 2/60/40, got %d/%d/%d",
			imp.TreesSaved, imp.WaterSaved, imp.CO2Reduced)
	}
}

func TestMeatlessMondayEndToEnd(t *testing.T) {
	svc := newTestService(t, nil)

	available, _ := svc.AvailableChallenges()
	if !containsChallenge(available, "challenge-4") {
		t.Fatal("Expected challenge-4 in the available set")
	}

	if err := svc.StartChallenge("challenge-4"); err != nil {
		t.Fatalf("Failed to start challenge: %v", err)
	}

	active, _ := svc.ActiveChallenges()
	if !containsChallenge(active, "challenge-4") {
		t.Fatal("Expected challenge-4 active after start")
	}

	if err := svc.CompleteChallenge("challenge-4"); err != nil {
		t.Fatalf("Failed to complete challenge: %v", err)
	}

	points, _ := svc.Points()
	if points != 200 {
		t.Errorf("Expected 200 points for Meatless Monday, got %d", points)
	}

	imp, _ := svc.EcoImpact()
	if imp.TreesSaved != 1 || imp.WaterSaved != 30 || imp.CO2Reduced != 20 {
		t.Errorf("Expected diet impact 1/30/20, got %d/%d/%d",
			imp.TreesSaved, imp.WaterSaved, imp.CO2Reduced)
	}

	available, _ = svc.AvailableChallenges()
	if containsChallenge(available, "challenge-4") {
		t.Error("Expected challenge-4 out of the available set")
	}
	completed, _ := svc.CompletedChallenges()
	if !containsChallenge(completed, "challenge-4") {
		t.Error("Expected challenge-4 in the completed set")
	}
}

func TestCartLedger(t *testing.T) {
	svc := newTestService(t, nil)

	bottle := product.Product{ID: "prod-1", Name: "Eco-Friendly Water Bottle", Points: 1200, Category: "Home"}

	for i := 0; i < 3; i++ {
		if err := svc.AddToCart(bottle); err != nil {
			t.Fatalf("Failed to add to cart: %v", err)
		}
	}

	items, _ := svc.CartItems()
	if len(items) != 1 {
		t.Fatalf("Expected a single quantity-keyed line, got %d lines", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", items[0].Quantity)
	}

	total, _ := svc.TotalCartPoints()
	if total != 3600 {
		t.Errorf("Expected total 3600, got %d", total)
	}

	// Quantity can never be driven below 1 through updates.
	if err := svc.UpdateCartItemQuantity("prod-1", 0); err != nil {
		t.Fatalf("Failed to update quantity: %v", err)
	}
	items, _ = svc.CartItems()
	if items[0].Quantity != 1 {
		t.Errorf("Expected quantity clamped to 1, got %d", items[0].Quantity)
	}

	// Removal is the only way to zero out a line.
	if err := svc.RemoveFromCart("prod-1"); err != nil {
		t.Fatalf("Failed to remove from cart: %v", err)
	}
	items, _ = svc.CartItems()
	if len(items) != 0 {
		t.Errorf("Expected empty cart after removal, got %d lines", len(items))
	}

	svc.AddToCart(bottle)
	svc.AddToCart(product.Product{ID: "prod-5", Name: "Recycled Notebook", Points: 500, Category: "Office"})
	if err := svc.ClearCart(); err != nil {
		t.Fatalf("Failed to clear cart: %v", err)
	}
	total, _ = svc.TotalCartPoints()
	if total != 0 {
		t.Errorf("Expected total 0 after clear, got %d", total)
	}
}

func TestSubscribersNotifiedOnMutation(t *testing.T) {
	svc := newTestService(t, nil)

	notified := 0
	id := svc.Subscribe(func() { notified++ })

	svc.AddPoints(10)
	if notified != 1 {
		t.Errorf("Expected 1 notification, got %d", notified)
	}

	svc.Unsubscribe(id)
	svc.AddPoints(10)
	if notified != 1 {
		t.Errorf("Expected no notification after unsubscribe, got %d", notified)
	}
}

func TestStateMirroredToStorage(t *testing.T) {
	store := kv.NewMemory()
	svc := services.NewEcoStateService(store)
	svc.Hydrate(context.Background())

	svc.AddPoints(25)
	svc.StartChallenge("challenge-2")

	// Close drains the fire-and-forget queue.
	svc.Close()

	raw, err := store.Get(context.Background(), "ecotrack_points")
	if err != nil {
		t.Fatalf("Expected points slice persisted: %v", err)
	}

	var env struct {
		Schema int             `json:"schema"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("Failed to parse slice envelope: %v", err)
	}
	if env.Schema != 1 {
		t.Errorf("Expected schema version 1, got %d", env.Schema)
	}

	var points int
	if err := json.Unmarshal(env.Data, &points); err != nil {
		t.Fatalf("Failed to parse points slice: %v", err)
	}
	if points != 25 {
		t.Errorf("Expected persisted points 25, got %d", points)
	}

	if _, err := store.Get(context.Background(), "ecotrack_challenges"); err != nil {
		t.Errorf("Expected challenge roster persisted: %v", err)
	}
}

func TestPartialRehydration(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	// Only points survive in storage; every other slice must default.
	store.Set(ctx, "ecotrack_points", `{"schema":1,"data":420}`)
	// Malformed and wrong-schema slices fall back without side effects.
	store.Set(ctx, "ecotrack_streak", `not json at all`)
	store.Set(ctx, "ecotrack_cartItems", `{"schema":99,"data":[]}`)

	svc := newTestService(t, store)

	state, err := svc.State()
	if err != nil {
		t.Fatalf("Failed to read state: %v", err)
	}

	if state.Points != 420 {
		t.Errorf("Expected hydrated points 420, got %d", state.Points)
	}
	if state.Streak.CurrentStreak != 0 {
		t.Errorf("Expected default streak, got %d", state.Streak.CurrentStreak)
	}
	if state.Footprint != nil {
		t.Error("Expected nil footprint")
	}
	if state.Survey.IsComplete() {
		t.Error("Expected empty survey")
	}
	if len(state.Challenges) != 8 {
		t.Errorf("Expected seed catalog fallback, got %d challenges", len(state.Challenges))
	}
	if len(state.CartItems) != 0 {
		t.Errorf("Expected empty cart, got %d lines", len(state.CartItems))
	}
}

func TestEmptyPersistedRosterFallsBackToSeed(t *testing.T) {
	store := kv.NewMemory()
	store.Set(context.Background(), "ecotrack_challenges", `{"schema":1,"data":[]}`)

	svc := newTestService(t, store)

	challenges, err := svc.Challenges()
	if err != nil {
		t.Fatalf("Failed to read challenges: %v", err)
	}
	if len(challenges) != 8 {
		t.Errorf("Expected seed catalog for an empty persisted roster, got %d challenges", len(challenges))
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	store := kv.NewMemory()

	svc := services.NewEcoStateService(store)
	svc.Hydrate(context.Background())
	svc.StartChallenge("challenge-4")
	svc.CompleteChallenge("challenge-4")
	svc.Close()

	reborn := newTestService(t, store)

	state, err := reborn.State()
	if err != nil {
		t.Fatalf("Failed to read rehydrated state: %v", err)
	}
	if state.Points != 200 {
		t.Errorf("Expected 200 points after restart, got %d", state.Points)
	}
	if state.Streak.CurrentStreak != 1 || state.Streak.LongestStreak != 1 {
		t.Errorf("Expected streak 1/1 after restart, got %+v", state.Streak)
	}

	completed, _ := reborn.CompletedChallenges()
	if !containsChallenge(completed, "challenge-4") {
		t.Error("Expected challenge-4 still completed after restart")
	}
}

func containsChallenge(challenges []challenge.Challenge, id string) bool {
	for _, c := range challenges {
		if c.ID == id {
			return true
		}
	}
	return false
}
