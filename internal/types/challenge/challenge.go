package challenge

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryEnergy         Category = "energy"
	CategoryDiet           Category = "diet"
	CategoryConsumption    Category = "consumption"
	CategoryGeneral        Category = "general"
)

// Challenge is one roster entry. Membership (available/active/completed) is
// derived from StartDate and Progress, never stored.
type Challenge struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Difficulty  Difficulty `json:"difficulty"`
	Duration    int        `json:"duration"` // in days
	StartDate   *time.Time `json:"start_date,omitempty"`
	Progress    int        `json:"progress"`
	Category    Category   `json:"category"`
}

func (c Challenge) IsAvailable() bool {
	return c.StartDate == nil
}

func (c Challenge) IsActive() bool {
	return c.StartDate != nil && c.Progress < 100
}

func (c Challenge) IsCompleted() bool {
	return c.Progress == 100
}

type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

// ImpactFor returns the eco-impact grant (trees, liters of water, kg of CO2)
// awarded when a challenge of the given category is completed.
func ImpactFor(category Category) (trees, water, co2 int) {
	switch category {
	case CategoryTransportation:
		return 1, 10, 50
	case CategoryEnergy:
		return 1, 5, 40
	case CategoryDiet:
		return 1, 30, 20
	case CategoryConsumption:
		return 2, 20, 30
	default:
		return 1, 15, 25
	}
}
