package models

import "time"

type Goal string

const (
	GoalLoseWeight       Goal = "lose_weight"
	GoalMaintainWeight   Goal = "maintain_weight"
	GoalBuildMuscle      Goal = "build_muscle"
	GoalImproveEndurance Goal = "improve_endurance"
)

type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

type HeightUnit string

const (
	HeightUnitCm HeightUnit = "cm"
	HeightUnitFt HeightUnit = "ft"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
)

type BiologicalSex string

const (
	SexMale   BiologicalSex = "male"
	SexFemale BiologicalSex = "female"
)

type WeeklyPace string

const (
	PaceConservative WeeklyPace = "conservative"
	PaceModerate     WeeklyPace = "moderate"
	PaceAggressive   WeeklyPace = "aggressive"
)

type DietPreferences struct {
	Vegan               bool `json:"vegan"`
	Vegetarian          bool `json:"vegetarian"`
	Pescatarian         bool `json:"pescatarian"`
	Keto                bool `json:"keto"`
	Paleo               bool `json:"paleo"`
	Mediterranean       bool `json:"mediterranean"`
	LowCarb             bool `json:"low_carb"`
	LowFat              bool `json:"low_fat"`
	GlutenFree          bool `json:"gluten_free"`
	DairyFree           bool `json:"dairy_free"`
	IntermittentFasting bool `json:"intermittent_fasting"`
	HighProtein         bool `json:"high_protein"`
}

type NotificationPreferences struct {
	MealReminders   bool `json:"meal_reminders"`
	WaterReminders  bool `json:"water_reminders"`
	ProgressUpdates bool `json:"progress_updates"`
}

type LifeEvent struct {
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
}

// UserProfile is the single persisted onboarding/targets aggregate, one per
// installed app instance. Height is always stored in centimeters; weight is
// stored in the unit the user picked and converted at calculation time.
type UserProfile struct {
	HasCompletedOnboarding bool `json:"has_completed_onboarding"`

	PrimaryGoal *Goal `json:"primary_goal"`

	CurrentWeight float64     `json:"current_weight"`
	WeightUnit    WeightUnit  `json:"weight_unit"`
	Height        float64     `json:"height"`
	HeightUnit    HeightUnit  `json:"height_unit"`
	BMI           float64     `json:"bmi"`
	BMICategory   BMICategory `json:"bmi_category"`

	ActivityLevel *ActivityLevel `json:"activity_level"`
	BiologicalSex *BiologicalSex `json:"biological_sex"`
	DateOfBirth   *time.Time     `json:"date_of_birth"`
	BodyFatRange  *string        `json:"body_fat_range"`

	Lifestyle       *string         `json:"lifestyle"`
	Allergies       []string        `json:"allergies"`
	DietPreferences DietPreferences `json:"diet_preferences"`
	MealPlan        *string         `json:"meal_plan"`

	TargetWeight float64    `json:"target_weight"`
	WeeklyPace   WeeklyPace `json:"weekly_pace"`
	LifeEvent    *LifeEvent `json:"life_event"`

	// Derived fields, written only by the calculators.
	DailyCalorieTarget int        `json:"daily_calorie_target"`
	ProteinTarget      int        `json:"protein_target"`
	CarbsTarget        int        `json:"carbs_target"`
	FatsTarget         int        `json:"fats_target"`
	ProjectedMilestone *string    `json:"projected_milestone"`
	EstimatedGoalDate  *time.Time `json:"estimated_goal_date"`

	Notifications NotificationPreferences `json:"notifications"`
	StreakDays    int                     `json:"streak_days"`
}

// Clone returns a deep copy so callers can't mutate store-owned state
// through shared pointers or slices.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.PrimaryGoal = clonePtr(p.PrimaryGoal)
	out.ActivityLevel = clonePtr(p.ActivityLevel)
	out.BiologicalSex = clonePtr(p.BiologicalSex)
	out.DateOfBirth = clonePtr(p.DateOfBirth)
	out.BodyFatRange = clonePtr(p.BodyFatRange)
	out.Lifestyle = clonePtr(p.Lifestyle)
	out.MealPlan = clonePtr(p.MealPlan)
	out.LifeEvent = clonePtr(p.LifeEvent)
	out.ProjectedMilestone = clonePtr(p.ProjectedMilestone)
	out.EstimatedGoalDate = clonePtr(p.EstimatedGoalDate)
	if p.Allergies != nil {
		out.Allergies = append([]string(nil), p.Allergies...)
	}
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ProfileUpdate carries a partial profile mutation; nil fields are left
// unchanged, mirroring the COALESCE-style partial update the API exposes.
// Derived fields are deliberately absent: only the calculators write them.
type ProfileUpdate struct {
	HasCompletedOnboarding *bool                    `json:"has_completed_onboarding"`
	PrimaryGoal            *Goal                    `json:"primary_goal"`
	CurrentWeight          *float64                 `json:"current_weight"`
	WeightUnit             *WeightUnit              `json:"weight_unit"`
	Height                 *float64                 `json:"height"`
	HeightUnit             *HeightUnit              `json:"height_unit"`
	ActivityLevel          *ActivityLevel           `json:"activity_level"`
	BiologicalSex          *BiologicalSex           `json:"biological_sex"`
	DateOfBirth            *time.Time               `json:"date_of_birth"`
	BodyFatRange           *string                  `json:"body_fat_range"`
	Lifestyle              *string                  `json:"lifestyle"`
	Allergies              *[]string                `json:"allergies"`
	DietPreferences        *DietPreferences         `json:"diet_preferences"`
	MealPlan               *string                  `json:"meal_plan"`
	TargetWeight           *float64                 `json:"target_weight"`
	WeeklyPace             *WeeklyPace              `json:"weekly_pace"`
	LifeEvent              *LifeEvent               `json:"life_event"`
	Notifications          *NotificationPreferences `json:"notifications"`
	StreakDays             *int                     `json:"streak_days"`
}
