package utils

import (
	"math"
	"testing"

	"ecoTrackAPI/internal/types/survey"
)

func TestCalculateCarbonFootprintKnownAnswers(t *testing.T) {
	answers := survey.Answers{
		Transportation: survey.TransportCar,
		Energy:         survey.EnergyElectricity,
		Diet:           survey.DietMeatHeavy,
		Consumption:    survey.ConsumptionAverage,
	}

	fp := CalculateCarbonFootprint(answers)

	if fp.Transportation != 4.6 {
		t.Errorf("Expected transportation 4.6, got %v", fp.Transportation)
	}
	if fp.Energy != 3.8 {
		t.Errorf("Expected energy 3.8, got %v", fp.Energy)
	}
	if fp.Diet != 3.3 {
		t.Errorf("Expected diet 3.3, got %v", fp.Diet)
	}
	if fp.Consumption != 2.0 {
		t.Errorf("Expected consumption 2.0, got %v", fp.Consumption)
	}
	if fp.Total != 13.7 {
		t.Errorf("Expected total 13.7, got %v", fp.Total)
	}

	// 13.7 is above the 12.5 average and way above the 2.0 target.
	if fp.ComparedToAverage != -10 {
		t.Errorf("Expected compared_to_average -10, got %v", fp.ComparedToAverage)
	}
	if fp.ComparedToTarget != 585 {
		t.Errorf("Expected compared_to_target 585, got %v", fp.ComparedToTarget)
	}
	if fp.Progress != 0 {
		t.Errorf("Expected progress clamped to 0, got %v", fp.Progress)
	}
}

func TestCalculateCarbonFootprintTotalEqualsSum(t *testing.T) {
	transports := []string{survey.TransportCar, survey.TransportPublic, survey.TransportBicycle, survey.TransportWalking}
	energies := []string{survey.EnergyElectricity, survey.EnergyNaturalGas, survey.EnergySolar, survey.EnergyOther}
	diets := []string{survey.DietMeatHeavy, survey.DietBalanced, survey.DietVegetarian, survey.DietVegan}
	consumptions := []string{survey.ConsumptionMinimal, survey.ConsumptionAverage, survey.ConsumptionFrequent, survey.ConsumptionExcessive}

	for _, tr := range transports {
		for _, en := range energies {
			for _, di := range diets {
				for _, co := range consumptions {
					fp := CalculateCarbonFootprint(survey.Answers{
						Transportation: tr,
						Energy:         en,
						Diet:           di,
						Consumption:    co,
					})

					sum := fp.Transportation + fp.Energy + fp.Diet + fp.Consumption
					if math.Abs(fp.Total-sum) > 0.05 {
						t.Errorf("Total %v does not match category sum %v for %s/%s/%s/%s",
							fp.Total, sum, tr, en, di, co)
					}
					if fp.Progress < 0 || fp.Progress > 100 {
						t.Errorf("Progress %v out of [0,100] for %s/%s/%s/%s", fp.Progress, tr, en, di, co)
					}
				}
			}
		}
	}
}

func TestCalculateCarbonFootprintLenientDefaults(t *testing.T) {
	// Unanswered and unrecognized values contribute zero, never an error.
	fp := CalculateCarbonFootprint(survey.Answers{Transportation: "teleporter"})

	if fp.Total != 0 {
		t.Errorf("Expected total 0 for unrecognized answers, got %v", fp.Total)
	}
	if fp.Progress != 100 {
		t.Errorf("Expected progress clamped to 100 for a zero footprint, got %v", fp.Progress)
	}
}
