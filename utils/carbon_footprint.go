package utils

import (
	"math"

	"ecoTrackAPI/internal/types/footprint"
	"ecoTrackAPI/internal/types/survey"
)

// Per-answer emission coefficients in tons of CO2 per year. Unanswered or
// unrecognized values fall through to 0 on purpose: the calculator is
// lenient, not a validation gate.
var (
	transportationEmissions = map[string]float64{
		"car":     4.6,
		"public":  1.5,
		"bicycle": 0.1,
		"walking": 0.0,
	}

	energyEmissions = map[string]float64{
		"electricity": 3.8,
		"natural_gas": 5.5,
		"solar":       0.4,
		"other":       2.5,
	}

	dietEmissions = map[string]float64{
		"meat_heavy": 3.3,
		"balanced":   2.5,
		"vegetarian": 1.7,
		"vegan":      1.1,
	}

	consumptionEmissions = map[string]float64{
		"minimal":   0.5,
		"average":   2.0,
		"frequent":  3.5,
		"excessive": 5.0,
	}
)

// Reference footprints for the comparison percentages.
const (
	AverageFootprintTons = 12.5
	TargetFootprintTons  = 2.0
)

// CalculateCarbonFootprint maps the four survey answers to a footprint
// breakdown. Pure: same answers, same result.
func CalculateCarbonFootprint(answers survey.Answers) footprint.Footprint {
	transportation := transportationEmissions[answers.Transportation]
	energy := energyEmissions[answers.Energy]
	diet := dietEmissions[answers.Diet]
	consumption := consumptionEmissions[answers.Consumption]

	total := transportation + energy + diet + consumption

	comparedToAverage := (AverageFootprintTons - total) / AverageFootprintTons * 100
	comparedToTarget := (total - TargetFootprintTons) / TargetFootprintTons * 100
	progress := (AverageFootprintTons - total) / (AverageFootprintTons - TargetFootprintTons) * 100
	progress = math.Max(0, math.Min(100, progress))

	return footprint.Footprint{
		Total:             roundTo1(total),
		Transportation:    roundTo1(transportation),
		Energy:            roundTo1(energy),
		Diet:              roundTo1(diet),
		Consumption:       roundTo1(consumption),
		ComparedToAverage: math.Round(comparedToAverage),
		ComparedToTarget:  math.Round(comparedToTarget),
		Progress:          math.Round(progress),
	}
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
