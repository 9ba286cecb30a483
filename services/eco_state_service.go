package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"ecoTrackAPI/internal/kv"
	"ecoTrackAPI/internal/types/cart"
	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/internal/types/footprint"
	"ecoTrackAPI/internal/types/impact"
	"ecoTrackAPI/internal/types/product"
	"ecoTrackAPI/internal/types/streak"
	"ecoTrackAPI/internal/types/survey"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/utils"
)

// ErrNotInitialized is returned by every operation invoked before Hydrate.
var ErrNotInitialized = errors.New("eco state store is not initialized")

// Slice keys in the kv store. Kept stable so a persisted state survives
// upgrades.
const (
	keySurvey        = "ecotrack_formData"
	keyFootprint     = "ecotrack_footprint"
	keyPoints        = "ecotrack_points"
	keyStreak        = "ecotrack_streak"
	keyLongestStreak = "ecotrack_longestStreak"
	keyTreesSaved    = "ecotrack_treesSaved"
	keyWaterSaved    = "ecotrack_waterSaved"
	keyCO2Reduced    = "ecotrack_co2Reduced"
	keyChallenges    = "ecotrack_challenges"
	keyCartItems     = "ecotrack_cartItems"
)

const sliceSchemaVersion = 1

const (
	calculatorBonusPoints = 100
	resultsBonusPoints    = 50
	resultsBonusTrees     = 1
	resultsBonusWater     = 20
	resultsBonusCO2       = 15
)

// Every slice is persisted wrapped in an envelope so future shape changes
// can default gracefully instead of breaking hydration.
type sliceEnvelope struct {
	Schema int             `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// EcoState is the full snapshot served to views. Derived fields are
// recomputed on every call, never cached.
type EcoState struct {
	Survey          survey.Answers        `json:"survey"`
	Footprint       *footprint.Footprint  `json:"footprint"`
	Points          int                   `json:"points"`
	Streak          streak.Streak         `json:"streak"`
	Impact          impact.Impact         `json:"impact"`
	Challenges      []challenge.Challenge `json:"challenges"`
	CartItems       []cart.Item           `json:"cart_items"`
	TotalCartPoints int                   `json:"total_cart_points"`
	EcoScore        float64               `json:"eco_score"`
}

// EcoStateService is the single source of truth for all mutable application
// data. Construct one per process (or per test) and inject it; there is no
// package-level instance on purpose.
type EcoStateService struct {
	mu          sync.Mutex
	store       kv.Store // nil means memory-only for this session
	writer      *stateWriter
	initialized bool

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int

	surveyAnswers   survey.Answers
	footprintResult *footprint.Footprint
	points          int
	currentStreak   int
	longestStreak   int
	ecoImpact       impact.Impact
	challenges      []challenge.Challenge
	cartItems       []cart.Item
}

func NewEcoStateService(store kv.Store) *EcoStateService {
	s := &EcoStateService{
		store:       store,
		subscribers: make(map[int]func()),
	}
	if store != nil {
		s.writer = newStateWriter(store)
	}
	return s
}

// Hydrate loads every slice from the kv store, falling back to defaults
// slice by slice. A malformed or unreadable slice never affects the others.
// Operations called before Hydrate fail with ErrNotInitialized.
func (s *EcoStateService) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.surveyAnswers = survey.Answers{}
	s.footprintResult = nil
	s.points = 0
	s.currentStreak = 0
	s.longestStreak = 0
	s.ecoImpact = impact.Impact{}
	s.challenges = challenge.SeedCatalog()
	s.cartItems = []cart.Item{}

	if s.store != nil {
		s.loadSlice(ctx, keySurvey, &s.surveyAnswers)

		var fp footprint.Footprint
		if s.loadSlice(ctx, keyFootprint, &fp) {
			s.footprintResult = &fp
		}

		s.loadSlice(ctx, keyPoints, &s.points)
		s.loadSlice(ctx, keyStreak, &s.currentStreak)
		s.loadSlice(ctx, keyLongestStreak, &s.longestStreak)
		s.loadSlice(ctx, keyTreesSaved, &s.ecoImpact.TreesSaved)
		s.loadSlice(ctx, keyWaterSaved, &s.ecoImpact.WaterSaved)
		s.loadSlice(ctx, keyCO2Reduced, &s.ecoImpact.CO2Reduced)

		var roster []challenge.Challenge
		// No operation ever empties the roster, so an empty persisted array
		// means wiped storage; treat it as absent and reseed.
		if s.loadSlice(ctx, keyChallenges, &roster) && len(roster) > 0 {
			s.challenges = roster
		}

		var items []cart.Item
		if s.loadSlice(ctx, keyCartItems, &items) {
			s.cartItems = items
		}
	}

	s.initialized = true
}

// loadSlice reports whether the slice was present and parseable. Any failure
// leaves the caller's default in place.
func (s *EcoStateService) loadSlice(ctx context.Context, key string, out any) bool {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("Hydration skipped for %s: %v", key, err)
		}
		return false
	}

	var env sliceEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || env.Schema != sliceSchemaVersion {
		log.Printf("Discarding slice %s: unknown shape or schema", key)
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Printf("Discarding malformed slice %s: %v", key, err)
		return false
	}
	return true
}

// Close drains the persistence queue. Call on shutdown.
func (s *EcoStateService) Close() {
	if s.writer != nil {
		s.writer.Close()
	}
}

// mutate runs fn under the state lock, then mirrors every slice to the kv
// store (fire-and-forget) and notifies subscribers.
func (s *EcoStateService) mutate(operation string, fn func()) error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	fn()
	batch := s.snapshotSlices()
	s.mu.Unlock()

	middleware.RecordStoreMutation(operation)
	if s.writer != nil {
		s.writer.Enqueue(batch)
	}
	s.notifySubscribers()
	return nil
}

// snapshotSlices serializes the complete current value of every slice.
// Call with the lock held.
func (s *EcoStateService) snapshotSlices() map[string]string {
	batch := map[string]string{
		keySurvey:        marshalSlice(s.surveyAnswers),
		keyPoints:        marshalSlice(s.points),
		keyStreak:        marshalSlice(s.currentStreak),
		keyLongestStreak: marshalSlice(s.longestStreak),
		keyTreesSaved:    marshalSlice(s.ecoImpact.TreesSaved),
		keyWaterSaved:    marshalSlice(s.ecoImpact.WaterSaved),
		keyCO2Reduced:    marshalSlice(s.ecoImpact.CO2Reduced),
		keyChallenges:    marshalSlice(s.challenges),
		keyCartItems:     marshalSlice(s.cartItems),
	}
	if s.footprintResult != nil {
		batch[keyFootprint] = marshalSlice(s.footprintResult)
	}
	return batch
}

func marshalSlice(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to serialize slice: %v", err)
		return ""
	}
	env, err := json.Marshal(sliceEnvelope{Schema: sliceSchemaVersion, Data: data})
	if err != nil {
		return ""
	}
	return string(env)
}

// -----------------------------------------------------------------------
// Subscriptions
// -----------------------------------------------------------------------

// Subscribe registers a callback invoked after every committed mutation.
// Callbacks run synchronously on the mutating goroutine; keep them short.
func (s *EcoStateService) Subscribe(fn func()) int {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	s.subscribers[s.nextSubID] = fn
	return s.nextSubID
}

func (s *EcoStateService) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	delete(s.subscribers, id)
}

func (s *EcoStateService) notifySubscribers() {
	s.subMu.Lock()
	callbacks := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// -----------------------------------------------------------------------
// Survey and footprint
// -----------------------------------------------------------------------

func (s *EcoStateService) SetSurvey(answers survey.Answers) error {
	return s.mutate("set_survey", func() {
		s.surveyAnswers = answers
	})
}

func (s *EcoStateService) Survey() (survey.Answers, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return survey.Answers{}, ErrNotInitialized
	}
	return s.surveyAnswers, nil
}

// CalculateFootprint recomputes the footprint from the current survey
// answers and awards the calculator bonus. The bonus is granted on every
// call, not once: recalculating is rewarded by design.
func (s *EcoStateService) CalculateFootprint() (*footprint.Footprint, error) {
	var result footprint.Footprint
	err := s.mutate("calculate_footprint", func() {
		result = utils.CalculateCarbonFootprint(s.surveyAnswers)
		s.footprintResult = &result
		s.points += calculatorBonusPoints
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Footprint returns nil when no calculation has run yet; the views use that
// to redirect to the calculator.
func (s *EcoStateService) Footprint() (*footprint.Footprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if s.footprintResult == nil {
		return nil, nil
	}
	fp := *s.footprintResult
	return &fp, nil
}

// -----------------------------------------------------------------------
// Points, streak and eco impact
// -----------------------------------------------------------------------

// AddPoints grants points. Negative amounts are clamped to zero: points are
// a monotonic counter, never spent in-app.
func (s *EcoStateService) AddPoints(amount int) error {
	return s.mutate("add_points", func() {
		if amount < 0 {
			amount = 0
		}
		s.points += amount
	})
}

func (s *EcoStateService) Points() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, ErrNotInitialized
	}
	return s.points, nil
}

func (s *EcoStateService) IncrementStreak() error {
	return s.mutate("increment_streak", func() {
		s.bumpStreak()
	})
}

func (s *EcoStateService) ResetStreak() error {
	return s.mutate("reset_streak", func() {
		s.currentStreak = 0
	})
}

// bumpStreak maintains the longestStreak >= currentStreak invariant.
// Call with the lock held.
func (s *EcoStateService) bumpStreak() {
	s.currentStreak++
	if s.currentStreak > s.longestStreak {
		s.longestStreak = s.currentStreak
	}
}

func (s *EcoStateService) StreakInfo() (streak.Streak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return streak.Streak{}, ErrNotInitialized
	}
	return streak.Streak{
		CurrentStreak: s.currentStreak,
		LongestStreak: s.longestStreak,
	}, nil
}

// UpdateEcoImpact adds to the impact accumulators. Negative deltas are
// clamped to zero to keep the counters monotonic.
func (s *EcoStateService) UpdateEcoImpact(trees, water, co2 int) error {
	return s.mutate("update_eco_impact", func() {
		s.addImpact(trees, water, co2)
	})
}

func (s *EcoStateService) addImpact(trees, water, co2 int) {
	if trees > 0 {
		s.ecoImpact.TreesSaved += trees
	}
	if water > 0 {
		s.ecoImpact.WaterSaved += water
	}
	if co2 > 0 {
		s.ecoImpact.CO2Reduced += co2
	}
}

func (s *EcoStateService) EcoImpact() (impact.Impact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return impact.Impact{}, ErrNotInitialized
	}
	return s.ecoImpact, nil
}

// ClaimResultsBonus grants the fixed reward for viewing calculation results.
func (s *EcoStateService) ClaimResultsBonus() error {
	return s.mutate("claim_results_bonus", func() {
		s.points += resultsBonusPoints
		s.addImpact(resultsBonusTrees, resultsBonusWater, resultsBonusCO2)
	})
}

// -----------------------------------------------------------------------
// Challenge lifecycle
// -----------------------------------------------------------------------

// StartChallenge arms a challenge and increments the streak. Unknown ids are
// stale view references and are ignored. Starting an already active or
// completed challenge re-arms it: progress and start date reset.
func (s *EcoStateService) StartChallenge(id string) error {
	return s.mutate("start_challenge", func() {
		for i := range s.challenges {
			if s.challenges[i].ID != id {
				continue
			}
			now := time.Now()
			s.challenges[i].StartDate = &now
			s.challenges[i].Progress = 0
			s.bumpStreak()
			return
		}
	})
}

// UpdateChallengeProgress clamps progress into [0,100]. Reaching 100 here
// does NOT fire completion side effects; only CompleteChallenge awards.
func (s *EcoStateService) UpdateChallengeProgress(id string, progress int) error {
	return s.mutate("update_challenge_progress", func() {
		if progress > 100 {
			progress = 100
		}
		if progress < 0 {
			progress = 0
		}
		for i := range s.challenges {
			if s.challenges[i].ID == id {
				s.challenges[i].Progress = progress
				return
			}
		}
	})
}

// CompleteChallenge sets progress to 100 and grants the challenge points and
// the per-category eco impact. Completing twice awards twice; idempotence is
// the caller's responsibility.
func (s *EcoStateService) CompleteChallenge(id string) error {
	return s.mutate("complete_challenge", func() {
		for i := range s.challenges {
			if s.challenges[i].ID != id {
				continue
			}
			s.challenges[i].Progress = 100
			s.points += s.challenges[i].Points

			trees, water, co2 := challenge.ImpactFor(s.challenges[i].Category)
			s.addImpact(trees, water, co2)
			return
		}
	})
}

func (s *EcoStateService) Challenges() ([]challenge.Challenge, error) {
	return s.filterChallenges(func(challenge.Challenge) bool { return true })
}

func (s *EcoStateService) ActiveChallenges() ([]challenge.Challenge, error) {
	return s.filterChallenges(challenge.Challenge.IsActive)
}

func (s *EcoStateService) AvailableChallenges() ([]challenge.Challenge, error) {
	return s.filterChallenges(challenge.Challenge.IsAvailable)
}

func (s *EcoStateService) CompletedChallenges() ([]challenge.Challenge, error) {
	return s.filterChallenges(challenge.Challenge.IsCompleted)
}

func (s *EcoStateService) filterChallenges(keep func(challenge.Challenge) bool) ([]challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	matched := make([]challenge.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		if keep(c) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// -----------------------------------------------------------------------
// Cart ledger
// -----------------------------------------------------------------------

// AddToCart inserts a new line with quantity 1 or bumps the quantity of an
// existing line for the same product.
func (s *EcoStateService) AddToCart(p product.Product) error {
	return s.mutate("add_to_cart", func() {
		for i := range s.cartItems {
			if s.cartItems[i].ID == p.ID {
				s.cartItems[i].Quantity++
				return
			}
		}
		s.cartItems = append(s.cartItems, cart.Item{
			ID:       p.ID,
			Name:     p.Name,
			Points:   p.Points,
			Image:    p.Image,
			Category: p.Category,
			Quantity: 1,
		})
	})
}

// RemoveFromCart deletes the whole line regardless of quantity.
func (s *EcoStateService) RemoveFromCart(id string) error {
	return s.mutate("remove_from_cart", func() {
		kept := s.cartItems[:0]
		for _, item := range s.cartItems {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		s.cartItems = kept
	})
}

// UpdateCartItemQuantity sets the line quantity to max(1, quantity).
// Removal is the only way to zero out a line.
func (s *EcoStateService) UpdateCartItemQuantity(id string, quantity int) error {
	return s.mutate("update_cart_quantity", func() {
		if quantity < 1 {
			quantity = 1
		}
		for i := range s.cartItems {
			if s.cartItems[i].ID == id {
				s.cartItems[i].Quantity = quantity
				return
			}
		}
	})
}

func (s *EcoStateService) ClearCart() error {
	return s.mutate("clear_cart", func() {
		s.cartItems = []cart.Item{}
	})
}

func (s *EcoStateService) CartItems() ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	items := make([]cart.Item, len(s.cartItems))
	copy(items, s.cartItems)
	return items, nil
}

func (s *EcoStateService) TotalCartPoints() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, ErrNotInitialized
	}
	return cart.TotalPoints(s.cartItems), nil
}

// -----------------------------------------------------------------------
// Snapshot
// -----------------------------------------------------------------------

// State assembles the full snapshot views render from.
func (s *EcoStateService) State() (*EcoState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	state := &EcoState{
		Survey: s.surveyAnswers,
		Points: s.points,
		Streak: streak.Streak{
			CurrentStreak: s.currentStreak,
			LongestStreak: s.longestStreak,
		},
		Impact:          s.ecoImpact,
		Challenges:      make([]challenge.Challenge, len(s.challenges)),
		CartItems:       make([]cart.Item, len(s.cartItems)),
		TotalCartPoints: cart.TotalPoints(s.cartItems),
	}
	copy(state.Challenges, s.challenges)
	copy(state.CartItems, s.cartItems)

	if s.footprintResult != nil {
		fp := *s.footprintResult
		state.Footprint = &fp
	}

	completed := 0
	for _, c := range s.challenges {
		if c.IsCompleted() {
			completed++
		}
	}
	state.EcoScore = utils.CalculateEcoScore(s.currentStreak, completed, s.points)

	return state, nil
}
