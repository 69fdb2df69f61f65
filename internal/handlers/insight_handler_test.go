package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/JunaidParamberi/MacroMateBack/internal/coach"
	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

type stubInsightGenerator struct {
	insight   *coach.DailyInsight
	lastStats coach.UserStats
}

func (s *stubInsightGenerator) GenerateDailyInsight(_ context.Context, stats coach.UserStats) *coach.DailyInsight {
	s.lastStats = stats
	return s.insight
}

func newInsightTestApp(generator *stubInsightGenerator, profile models.UserProfile) *fiber.App {
	handler := NewInsightHandler(generator, &stubProfileStore{profile: profile})
	app := fiber.New()
	app.Get("/api/v1/insights/daily", handler.GetDailyInsight)
	return app
}

func TestGetDailyInsightBuildsStatsFromProfile(t *testing.T) {
	generator := &stubInsightGenerator{insight: &coach.DailyInsight{Title: "Fuel up"}}
	app := newInsightTestApp(generator, models.UserProfile{
		DailyCalorieTarget: 2200,
		ProteinTarget:      170,
		StreakDays:         6,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/v1/insights/daily?consumed_calories=1500&consumed_protein=90", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if generator.lastStats.CaloriesRemaining != 700 || generator.lastStats.ProteinRemaining != 80 {
		t.Fatalf("unexpected stats: %+v", generator.lastStats)
	}
	if generator.lastStats.StreakDays != 6 {
		t.Fatalf("streak = %d, want 6", generator.lastStats.StreakDays)
	}

	var body struct {
		Insight coach.DailyInsight `json:"insight"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Insight.Title != "Fuel up" {
		t.Fatalf("unexpected insight: %+v", body.Insight)
	}
}

func TestGetDailyInsightRejectsNegativeTotals(t *testing.T) {
	app := newInsightTestApp(&stubInsightGenerator{}, models.UserProfile{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/v1/insights/daily?consumed_calories=-10", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
