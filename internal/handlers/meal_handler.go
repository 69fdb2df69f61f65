package handlers

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/JunaidParamberi/MacroMateBack/internal/coach"
)

const maxMealImageBytes = 8 * 1024 * 1024

type mealAnalyzer interface {
	AnalyzeMealFromText(ctx context.Context, description string) *coach.MealAnalysis
	AnalyzeMealFromImage(ctx context.Context, base64Image, mimeType string) *coach.MealAnalysis
}

type MealHandler struct {
	coaching mealAnalyzer
}

func NewMealHandler(coaching mealAnalyzer) *MealHandler {
	return &MealHandler{coaching: coaching}
}

type analyzeMealRequest struct {
	Description string `json:"description"`
}

type analyzeMealImageRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

// AnalyzeMeal estimates macros from a free-text description. The coaching
// service degrades to a keyword heuristic on upstream failure, so this
// endpoint always answers 200 for well-formed input.
func (h *MealHandler) AnalyzeMeal(c *fiber.Ctx) error {
	var req analyzeMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description is required"})
	}

	analysis := h.coaching.AnalyzeMealFromText(c.Context(), req.Description)
	return c.JSON(fiber.Map{"analysis": analysis})
}

// AnalyzeMealImage estimates macros from a base64-encoded photo.
func (h *MealHandler) AnalyzeMealImage(c *fiber.Ctx) error {
	var req analyzeMealImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image is required"})
	}
	if base64.StdEncoding.DecodedLen(len(req.Image)) > maxMealImageBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image exceeds 8MB limit"})
	}
	if _, err := base64.StdEncoding.DecodeString(req.Image); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image must be valid base64"})
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	analysis := h.coaching.AnalyzeMealFromImage(c.Context(), req.Image, mimeType)
	return c.JSON(fiber.Map{"analysis": analysis})
}
