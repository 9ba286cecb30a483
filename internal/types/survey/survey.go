package survey

// Option values submitted by the calculator form. The footprint calculator
// treats anything outside these lists as a zero-emission answer.
const (
	TransportCar     = "car"
	TransportPublic  = "public"
	TransportBicycle = "bicycle"
	TransportWalking = "walking"

	EnergyElectricity = "electricity"
	EnergyNaturalGas  = "natural_gas"
	EnergySolar       = "solar"
	EnergyOther       = "other"

	DietMeatHeavy  = "meat_heavy"
	DietBalanced   = "balanced"
	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"

	ConsumptionMinimal   = "minimal"
	ConsumptionAverage   = "average"
	ConsumptionFrequent  = "frequent"
	ConsumptionExcessive = "excessive"
)

// Answers holds the four categorical survey answers. An empty string means
// the question has not been answered yet.
type Answers struct {
	Transportation string `json:"transportation"`
	Energy         string `json:"energy"`
	Diet           string `json:"diet"`
	Consumption    string `json:"consumption"`
}

func (a Answers) IsComplete() bool {
	return a.Transportation != "" && a.Energy != "" && a.Diet != "" && a.Consumption != ""
}
