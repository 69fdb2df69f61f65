package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

type profileStore interface {
	Get() models.UserProfile
	Hydrated() bool
	Update(ctx context.Context, upd models.ProfileUpdate) models.UserProfile
	CalculateBMI(ctx context.Context) models.UserProfile
	CalculateNutritionTargets(ctx context.Context) models.UserProfile
	Reset(ctx context.Context) models.UserProfile
}

type ProfileHandler struct {
	store profileStore
}

func NewProfileHandler(store profileStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"profile":     h.store.Get(),
		"is_hydrated": h.store.Hydrated(),
	})
}

// UpdateProfile applies a partial update. Derived fields are not settable
// here; clients call Recalculate after mutating calculator inputs.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile := h.store.Update(c.Context(), req)
	return c.JSON(fiber.Map{"profile": profile})
}

// CompleteOnboarding applies the final onboarding answers, marks onboarding
// done, and runs both calculators so the review screen reads fresh targets.
func (h *ProfileHandler) CompleteOnboarding(c *fiber.Ctx) error {
	var req models.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	done := true
	req.HasCompletedOnboarding = &done
	h.store.Update(c.Context(), req)
	h.store.CalculateBMI(c.Context())
	profile := h.store.CalculateNutritionTargets(c.Context())

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.HasCompletedOnboarding,
	})
}

// Recalculate reruns BMI and nutrition-target derivation from the current
// inputs. When preconditions are missing the previous derived values stay in
// place; the response carries the profile either way.
func (h *ProfileHandler) Recalculate(c *fiber.Ctx) error {
	h.store.CalculateBMI(c.Context())
	profile := h.store.CalculateNutritionTargets(c.Context())
	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) ResetProfile(c *fiber.Ctx) error {
	profile := h.store.Reset(c.Context())
	return c.JSON(fiber.Map{"profile": profile})
}
