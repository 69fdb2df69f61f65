package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

type stubProfileStore struct {
	profile     models.UserProfile
	hydrated    bool
	lastUpdate  *models.ProfileUpdate
	bmiCalls    int
	targetCalls int
	resetCalls  int
}

func (s *stubProfileStore) Get() models.UserProfile { return s.profile }
func (s *stubProfileStore) Hydrated() bool          { return s.hydrated }

func (s *stubProfileStore) Update(_ context.Context, upd models.ProfileUpdate) models.UserProfile {
	s.lastUpdate = &upd
	if upd.HasCompletedOnboarding != nil {
		s.profile.HasCompletedOnboarding = *upd.HasCompletedOnboarding
	}
	if upd.CurrentWeight != nil {
		s.profile.CurrentWeight = *upd.CurrentWeight
	}
	return s.profile
}

func (s *stubProfileStore) CalculateBMI(_ context.Context) models.UserProfile {
	s.bmiCalls++
	return s.profile
}

func (s *stubProfileStore) CalculateNutritionTargets(_ context.Context) models.UserProfile {
	s.targetCalls++
	return s.profile
}

func (s *stubProfileStore) Reset(_ context.Context) models.UserProfile {
	s.resetCalls++
	return s.profile
}

func newProfileTestApp(store *stubProfileStore) *fiber.App {
	handler := NewProfileHandler(store)
	app := fiber.New()
	app.Get("/api/v1/profile", handler.GetProfile)
	app.Put("/api/v1/profile", handler.UpdateProfile)
	app.Post("/api/v1/profile/onboarding", handler.CompleteOnboarding)
	app.Post("/api/v1/profile/recalculate", handler.Recalculate)
	app.Post("/api/v1/profile/reset", handler.ResetProfile)
	return app
}

func TestGetProfileReportsHydration(t *testing.T) {
	store := &stubProfileStore{profile: models.UserProfile{CurrentWeight: 75}, hydrated: true}
	app := newProfileTestApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Profile    models.UserProfile `json:"profile"`
		IsHydrated bool               `json:"is_hydrated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !body.IsHydrated || body.Profile.CurrentWeight != 75 {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestUpdateProfileRejectsUnknownGoal(t *testing.T) {
	store := &stubProfileStore{}
	app := newProfileTestApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile",
		strings.NewReader(`{"primary_goal":"get_shredded"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if store.lastUpdate != nil {
		t.Fatal("store should not be touched on validation failure")
	}
}

func TestUpdateProfileAppliesPartialUpdate(t *testing.T) {
	store := &stubProfileStore{}
	app := newProfileTestApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile",
		strings.NewReader(`{"current_weight":82.5,"weight_unit":"kg"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUpdate == nil || store.lastUpdate.CurrentWeight == nil || *store.lastUpdate.CurrentWeight != 82.5 {
		t.Fatalf("unexpected update: %+v", store.lastUpdate)
	}
	if store.lastUpdate.Height != nil {
		t.Fatal("absent fields must stay nil")
	}
}

func TestCompleteOnboardingRunsBothCalculators(t *testing.T) {
	store := &stubProfileStore{}
	app := newProfileTestApp(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/onboarding",
		strings.NewReader(`{"primary_goal":"lose_weight","biological_sex":"male"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUpdate == nil || store.lastUpdate.HasCompletedOnboarding == nil || !*store.lastUpdate.HasCompletedOnboarding {
		t.Fatal("onboarding flag not set on update")
	}
	if store.bmiCalls != 1 || store.targetCalls != 1 {
		t.Fatalf("calculator calls = %d/%d, want 1/1", store.bmiCalls, store.targetCalls)
	}
}

func TestRecalculateRunsBothCalculators(t *testing.T) {
	store := &stubProfileStore{}
	app := newProfileTestApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/profile/recalculate", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.bmiCalls != 1 || store.targetCalls != 1 {
		t.Fatalf("calculator calls = %d/%d, want 1/1", store.bmiCalls, store.targetCalls)
	}
}

func TestResetProfileDelegatesToStore(t *testing.T) {
	store := &stubProfileStore{}
	app := newProfileTestApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/profile/reset", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.resetCalls != 1 {
		t.Fatalf("reset calls = %d, want 1", store.resetCalls)
	}
}
