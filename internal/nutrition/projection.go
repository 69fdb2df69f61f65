package nutrition

import (
	"fmt"
	"math"
	"time"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/units"
)

var weeklyLossKg = map[models.WeeklyPace]float64{
	models.PaceConservative: 0.25,
	models.PaceModerate:     0.5,
	models.PaceAggressive:   0.75,
}

// Projection is the estimated goal date plus the 30-day milestone string.
// Milestone is nil unless the user is losing weight; maintenance and gain
// goals never get one.
type Projection struct {
	EstimatedGoalDate time.Time
	Milestone         *string
}

// ComputeProjection estimates when the target weight will be reached at the
// chosen weekly pace. Weights arrive in the profile's unit and are
// normalized here.
func ComputeProjection(current, target float64, unit models.WeightUnit, pace models.WeeklyPace, now time.Time) Projection {
	currentKg, targetKg := current, target
	if unit == models.WeightUnitLbs {
		currentKg = units.LbsToKg(current)
		targetKg = units.LbsToKg(target)
	}

	weekly, ok := weeklyLossKg[pace]
	if !ok {
		weekly = weeklyLossKg[models.PaceModerate]
	}

	diff := currentKg - targetKg
	weeksToGoal := math.Abs(diff) / weekly

	proj := Projection{
		EstimatedGoalDate: now.Add(time.Duration(weeksToGoal*7*24) * time.Hour),
	}

	if diff > 0 {
		thirtyDayLoss := math.Min(diff, weekly*4.3)
		milestone := fmt.Sprintf("-%.1fkg in 30 days", thirtyDayLoss)
		proj.Milestone = &milestone
	}

	return proj
}
