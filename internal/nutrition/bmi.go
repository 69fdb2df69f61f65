// Package nutrition holds the pure calculation functions behind the profile
// store: BMI, calorie/macro targets, and goal projection. Keeping them free
// of store/persistence machinery makes the arithmetic unit-testable on its
// own; the store orchestrates by calling these and assigning the results.
package nutrition

import (
	"math"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/units"
)

// ComputeBMI derives the body-mass index (one decimal) and its category from
// a weight in the profile's unit and a height in centimeters. Category
// thresholds are half-open: 18.5 and 25 and 30 each belong to the upper band.
func ComputeBMI(weight float64, unit models.WeightUnit, heightCM float64) (float64, models.BMICategory) {
	weightKg := weight
	if unit == models.WeightUnitLbs {
		weightKg = units.LbsToKg(weight)
	}

	heightM := heightCM / 100
	bmi := weightKg / (heightM * heightM)
	bmi = math.Round(bmi*10) / 10

	return bmi, categorize(bmi)
}

func categorize(bmi float64) models.BMICategory {
	switch {
	case bmi < 18.5:
		return models.BMIUnderweight
	case bmi < 25:
		return models.BMINormal
	case bmi < 30:
		return models.BMIOverweight
	default:
		return models.BMIObese
	}
}
