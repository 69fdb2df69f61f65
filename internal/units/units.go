// Package units holds the pure weight/height conversion helpers shared by
// the calculators and the display layer.
package units

import "math"

const (
	lbsPerKg = 2.20462
	kgPerLbs = 0.453592
)

func KgToLbs(kg float64) float64 {
	return kg * lbsPerKg
}

func LbsToKg(lbs float64) float64 {
	return lbs * kgPerLbs
}

// CmToFeetInches splits a centimeter height into whole feet and rounded
// inches. Inches can round up to 12 without carrying into feet; callers that
// render the pair display it as-is.
func CmToFeetInches(cm float64) (feet, inches int) {
	totalInches := cm / 2.54
	feet = int(math.Floor(totalInches / 12))
	inches = int(math.Round(math.Mod(totalInches, 12)))
	return feet, inches
}
