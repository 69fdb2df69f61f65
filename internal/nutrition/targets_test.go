package nutrition

import (
	"testing"
	"time"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

func targetsNow() time.Time {
	return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
}

// makeProfile builds a profile with every field ComputeTargets needs set;
// tests nil out or override fields to exercise specific paths.
func makeProfile(sex models.BiologicalSex, birthYear int, weightKg float64, level models.ActivityLevel) *models.UserProfile {
	dob := time.Date(birthYear, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.UserProfile{
		CurrentWeight: weightKg,
		WeightUnit:    models.WeightUnitKg,
		BiologicalSex: &sex,
		ActivityLevel: &level,
		DateOfBirth:   &dob,
		WeeklyPace:    models.PaceModerate,
	}
}

func TestComputeTargetsMissingPreconditions(t *testing.T) {
	cases := []struct {
		name string
		mut  func(p *models.UserProfile)
	}{
		{"nil sex", func(p *models.UserProfile) { p.BiologicalSex = nil }},
		{"nil activity level", func(p *models.UserProfile) { p.ActivityLevel = nil }},
		{"nil date of birth", func(p *models.UserProfile) { p.DateOfBirth = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := makeProfile(models.SexMale, 1996, 90, models.ActivityModeratelyActive)
			tc.mut(p)
			if _, ok := ComputeTargets(p, targetsNow()); ok {
				t.Errorf("expected ok=false when %s", tc.name)
			}
		})
	}
}

// Worked scenario: male, 30, 90kg, moderately active, losing weight at
// moderate pace. BMR = 900 + 1093.75 - 150 + 5 = 1848.75;
// TDEE = round(1848.75*1.55) = 2866; target = 2866 - 500 = 2366.
func TestComputeTargetsLoseWeightModerate(t *testing.T) {
	p := makeProfile(models.SexMale, 1996, 90, models.ActivityModeratelyActive)
	goal := models.GoalLoseWeight
	p.PrimaryGoal = &goal

	got, ok := ComputeTargets(p, targetsNow())
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := Targets{Calories: 2366, ProteinG: 237, CarbsG: 177, FatsG: 79}
	if got != want {
		t.Errorf("targets = %+v, want %+v", got, want)
	}
}

func TestComputeTargetsBuildMuscleSurplus(t *testing.T) {
	p := makeProfile(models.SexMale, 1996, 90, models.ActivityModeratelyActive)
	goal := models.GoalBuildMuscle
	p.PrimaryGoal = &goal

	got, ok := ComputeTargets(p, targetsNow())
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got.Calories != 2866+300 {
		t.Errorf("calories = %d, want %d", got.Calories, 3166)
	}
	// Build-muscle split is 35/25/40.
	if got.ProteinG != 277 || got.CarbsG != 317 || got.FatsG != 88 {
		t.Errorf("macros = %d/%d/%d, want 277/317/88", got.ProteinG, got.CarbsG, got.FatsG)
	}
}

func TestComputeTargetsWeightInPounds(t *testing.T) {
	p := makeProfile(models.SexFemale, 1996, 150, models.ActivitySedentary)
	p.WeightUnit = models.WeightUnitLbs

	got, ok := ComputeTargets(p, targetsNow())
	if !ok {
		t.Fatal("expected ok=true")
	}
	// 150lbs = 68.0388kg; BMR = 680.388 + 1012.5 - 150 - 161 = 1381.888;
	// TDEE = round(1381.888*1.2) = 1658.
	if got.Calories != 1658 {
		t.Errorf("calories = %d, want 1658", got.Calories)
	}
}

func TestComputeTargetsKetoRatiosApplyWithoutGoalSplit(t *testing.T) {
	p := makeProfile(models.SexMale, 1996, 90, models.ActivityModeratelyActive)
	p.DietPreferences.Keto = true

	got, ok := ComputeTargets(p, targetsNow())
	if !ok {
		t.Fatal("expected ok=true")
	}
	// No goal adjustment: target stays at TDEE 2866, keto split 25/70/05.
	if got.Calories != 2866 {
		t.Fatalf("calories = %d, want 2866", got.Calories)
	}
	if got.ProteinG != 179 || got.CarbsG != 36 || got.FatsG != 223 {
		t.Errorf("macros p/c/f = %d/%d/%d, want 179/36/223", got.ProteinG, got.CarbsG, got.FatsG)
	}
}

func TestComputeTargetsGoalSplitBeatsKeto(t *testing.T) {
	p := makeProfile(models.SexMale, 1996, 90, models.ActivityModeratelyActive)
	goal := models.GoalLoseWeight
	p.PrimaryGoal = &goal
	p.DietPreferences.Keto = true

	got, ok := ComputeTargets(p, targetsNow())
	if !ok {
		t.Fatal("expected ok=true")
	}
	// lose_weight split (40/30/30) wins over the keto preference.
	if got.ProteinG != 237 {
		t.Errorf("protein = %d, want 237", got.ProteinG)
	}
}

// The 1200 kcal floor holds for every goal/pace combination, including
// profiles whose raw deficit math lands far below it.
func TestComputeTargetsCalorieFloor(t *testing.T) {
	goals := []models.Goal{models.GoalLoseWeight, models.GoalMaintainWeight, models.GoalBuildMuscle, models.GoalImproveEndurance}
	paces := []models.WeeklyPace{models.PaceConservative, models.PaceModerate, models.PaceAggressive}

	for _, goal := range goals {
		for _, pace := range paces {
			p := makeProfile(models.SexFemale, 1950, 40, models.ActivitySedentary)
			g := goal
			p.PrimaryGoal = &g
			p.WeeklyPace = pace

			got, ok := ComputeTargets(p, targetsNow())
			if !ok {
				t.Fatalf("goal=%s pace=%s: expected ok=true", goal, pace)
			}
			if got.Calories < MinDailyCalories {
				t.Errorf("goal=%s pace=%s: calories %d below floor", goal, pace, got.Calories)
			}
		}
	}
}
