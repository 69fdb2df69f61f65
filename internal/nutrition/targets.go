package nutrition

import (
	"math"
	"time"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/units"
)

// MinDailyCalories is the hard floor applied to every computed calorie
// target regardless of goal and pace.
const MinDailyCalories = 1200

// Height estimates used by the BMR formula. The mobile app shipped with
// these fixed per-sex values instead of reading the recorded height, and the
// stored targets of existing installs depend on them, so they stay.
const (
	estimatedHeightMaleCM   = 175
	estimatedHeightFemaleCM = 162
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:        1.2,
	models.ActivityLightlyActive:    1.375,
	models.ActivityModeratelyActive: 1.55,
	models.ActivityVeryActive:       1.725,
}

var paceDeficits = map[models.WeeklyPace]float64{
	models.PaceConservative: 250,
	models.PaceModerate:     500,
	models.PaceAggressive:   750,
}

// Targets is the derived daily calorie and macro output, all in kcal/grams.
type Targets struct {
	Calories int
	ProteinG int
	CarbsG   int
	FatsG    int
}

// ComputeTargets derives the daily calorie and macro targets from the
// profile via Mifflin-St Jeor BMR scaled by activity level, adjusted for the
// primary goal. Returns ok=false without computing anything when biological
// sex, activity level, or date of birth is missing — callers keep whatever
// derived values they already had.
//
// Age is calendar-year subtraction, so it runs one year high until the
// birthday each year. Kept for parity with the stored targets of the app.
func ComputeTargets(p *models.UserProfile, now time.Time) (Targets, bool) {
	if p.BiologicalSex == nil || p.ActivityLevel == nil || p.DateOfBirth == nil {
		return Targets{}, false
	}

	weightKg := p.CurrentWeight
	if p.WeightUnit == models.WeightUnitLbs {
		weightKg = units.LbsToKg(p.CurrentWeight)
	}

	age := now.Year() - p.DateOfBirth.Year()

	var bmr float64
	if *p.BiologicalSex == models.SexMale {
		bmr = 10*weightKg + 6.25*estimatedHeightMaleCM - 5*float64(age) + 5
	} else {
		bmr = 10*weightKg + 6.25*estimatedHeightFemaleCM - 5*float64(age) - 161
	}

	mult, ok := activityMultipliers[*p.ActivityLevel]
	if !ok {
		return Targets{}, false
	}
	tdee := math.Round(bmr * mult)

	calories := tdee
	if p.PrimaryGoal != nil {
		switch *p.PrimaryGoal {
		case models.GoalLoseWeight:
			deficit, found := paceDeficits[p.WeeklyPace]
			if !found {
				deficit = paceDeficits[models.PaceModerate]
			}
			calories -= deficit
		case models.GoalBuildMuscle:
			calories += 300
		case models.GoalImproveEndurance:
			calories += 100
		}
	}

	proteinRatio, fatRatio, carbRatio := macroRatios(p)

	// Grams are derived before the calorie floor is applied; a clamped
	// target keeps the macros of the unclamped one.
	targets := Targets{
		ProteinG: int(math.Round(calories * proteinRatio / 4)),
		CarbsG:   int(math.Round(calories * carbRatio / 4)),
		FatsG:    int(math.Round(calories * fatRatio / 9)),
	}

	if calories < MinDailyCalories {
		calories = MinDailyCalories
	}
	targets.Calories = int(calories)

	return targets, true
}

// macroRatios picks the protein/fat/carb calorie fractions by priority:
// goal-specific splits win over the keto diet preference, which wins over
// the default split.
func macroRatios(p *models.UserProfile) (protein, fat, carb float64) {
	if p.PrimaryGoal != nil {
		switch *p.PrimaryGoal {
		case models.GoalLoseWeight:
			return 0.40, 0.30, 0.30
		case models.GoalBuildMuscle:
			return 0.35, 0.25, 0.40
		}
	}
	if p.DietPreferences.Keto {
		return 0.25, 0.70, 0.05
	}
	return 0.30, 0.30, 0.40
}
