package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/JunaidParamberi/MacroMateBack/internal/coach"
	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

type insightGenerator interface {
	GenerateDailyInsight(ctx context.Context, stats coach.UserStats) *coach.DailyInsight
}

type profileGetter interface {
	Get() models.UserProfile
}

type InsightHandler struct {
	coaching insightGenerator
	profiles profileGetter
}

func NewInsightHandler(coaching insightGenerator, profiles profileGetter) *InsightHandler {
	return &InsightHandler{coaching: coaching, profiles: profiles}
}

// GetDailyInsight builds today's stats from the stored targets and the
// consumed totals the client reports, then asks the coaching service for a
// nudge. The service falls back to threshold heuristics, so this always
// returns an insight.
func (h *InsightHandler) GetDailyInsight(c *fiber.Ctx) error {
	consumedCalories := c.QueryInt("consumed_calories", 0)
	consumedProtein := c.QueryInt("consumed_protein", 0)
	if consumedCalories < 0 || consumedProtein < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "consumed totals must be 0 or greater"})
	}

	profile := h.profiles.Get()
	stats := coach.UserStats{
		CaloriesTarget:    profile.DailyCalorieTarget,
		CaloriesRemaining: profile.DailyCalorieTarget - consumedCalories,
		ProteinTarget:     profile.ProteinTarget,
		ProteinRemaining:  profile.ProteinTarget - consumedProtein,
		StreakDays:        profile.StreakDays,
	}

	insight := h.coaching.GenerateDailyInsight(c.Context(), stats)
	return c.JSON(fiber.Map{"insight": insight})
}
