package impact

// Impact accumulates simulated environmental benefit. All counters are
// non-negative and only ever increase.
type Impact struct {
	TreesSaved int `json:"trees_saved"`
	WaterSaved int `json:"water_saved"` // liters
	CO2Reduced int `json:"co2_reduced"` // kilograms
}

type UpdateImpactRequest struct {
	Trees int `json:"trees"`
	Water int `json:"water"`
	CO2   int `json:"co2"`
}
