package handlers

import (
	"strings"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

var allowedGoals = map[models.Goal]struct{}{
	models.GoalLoseWeight:       {},
	models.GoalMaintainWeight:   {},
	models.GoalBuildMuscle:      {},
	models.GoalImproveEndurance: {},
}

var allowedActivityLevels = map[models.ActivityLevel]struct{}{
	models.ActivitySedentary:        {},
	models.ActivityLightlyActive:    {},
	models.ActivityModeratelyActive: {},
	models.ActivityVeryActive:       {},
}

var allowedSexes = map[models.BiologicalSex]struct{}{
	models.SexMale:   {},
	models.SexFemale: {},
}

var allowedWeightUnits = map[models.WeightUnit]struct{}{
	models.WeightUnitKg:  {},
	models.WeightUnitLbs: {},
}

var allowedHeightUnits = map[models.HeightUnit]struct{}{
	models.HeightUnitCm: {},
	models.HeightUnitFt: {},
}

var allowedPaces = map[models.WeeklyPace]struct{}{
	models.PaceConservative: {},
	models.PaceModerate:     {},
	models.PaceAggressive:   {},
}

// validateProfileUpdateRequest checks enum membership only. Numeric inputs
// are accepted as-is; the calculators decide whether they can derive
// anything from them.
func validateProfileUpdateRequest(req models.ProfileUpdate) string {
	if req.PrimaryGoal != nil {
		if _, ok := allowedGoals[*req.PrimaryGoal]; !ok {
			return "primary_goal must be one of: lose_weight, maintain_weight, build_muscle, improve_endurance"
		}
	}
	if req.ActivityLevel != nil {
		if _, ok := allowedActivityLevels[*req.ActivityLevel]; !ok {
			return "activity_level must be one of: sedentary, lightly_active, moderately_active, very_active"
		}
	}
	if req.BiologicalSex != nil {
		if _, ok := allowedSexes[*req.BiologicalSex]; !ok {
			return "biological_sex must be one of: male, female"
		}
	}
	if req.WeightUnit != nil {
		if _, ok := allowedWeightUnits[*req.WeightUnit]; !ok {
			return "weight_unit must be one of: kg, lbs"
		}
	}
	if req.HeightUnit != nil {
		if _, ok := allowedHeightUnits[*req.HeightUnit]; !ok {
			return "height_unit must be one of: cm, ft"
		}
	}
	if req.WeeklyPace != nil {
		if _, ok := allowedPaces[*req.WeeklyPace]; !ok {
			return "weekly_pace must be one of: conservative, moderate, aggressive"
		}
	}
	if req.Allergies != nil {
		for _, allergy := range *req.Allergies {
			if strings.TrimSpace(allergy) == "" {
				return "allergies must not contain empty values"
			}
		}
	}
	if req.LifeEvent != nil && strings.TrimSpace(req.LifeEvent.Title) == "" {
		return "life_event.title is required"
	}
	return ""
}

func validateFocusAreas(areas []models.FocusArea) string {
	for _, area := range areas {
		switch area {
		case models.FocusNutrition, models.FocusTraining, models.FocusRecovery, models.FocusMindset, models.FocusProgress:
		default:
			return "focus_areas must be one of: Nutrition, Training, Recovery, Mindset, Progress"
		}
	}
	return ""
}

func validateAutomationType(kind models.AutomationType) string {
	switch kind {
	case models.AutomationLogFood, models.AutomationLogExercise, models.AutomationLogWater,
		models.AutomationOpenPage, models.AutomationSendPrompt, models.AutomationOpenMap:
		return ""
	default:
		return "type must be one of: log_food, log_exercise, log_water, open_page, send_prompt, open_map"
	}
}
