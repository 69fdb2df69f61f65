package routes

import (
	"context"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/JunaidParamberi/MacroMateBack/internal/coach"
	"github.com/JunaidParamberi/MacroMateBack/internal/config"
	"github.com/JunaidParamberi/MacroMateBack/internal/handlers"
	"github.com/JunaidParamberi/MacroMateBack/internal/middleware"
	"github.com/JunaidParamberi/MacroMateBack/internal/services"
	"github.com/JunaidParamberi/MacroMateBack/internal/storage"
	"github.com/JunaidParamberi/MacroMateBack/internal/store"
	trainerws "github.com/JunaidParamberi/MacroMateBack/internal/websocket"
)

func RegisterRoutes(ctx context.Context, app *fiber.App, cfg *config.Config, blobs storage.BlobStore) {
	profileStore := store.NewProfileStore(ctx, blobs)
	trainerStore := store.NewTrainerStore(ctx, blobs)

	coachClient := coach.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	coachingService := services.NewCoachingService(coachClient)
	trainerService := services.NewTrainerService(profileStore, trainerStore, coachingService)

	trainerHub := trainerws.NewHub()
	go trainerHub.Run()

	profileHandler := handlers.NewProfileHandler(profileStore)
	trainerHandler := handlers.NewTrainerHandler(trainerService, trainerHub, cfg.APIToken)
	mealHandler := handlers.NewMealHandler(coachingService)
	insightHandler := handlers.NewInsightHandler(coachingService, profileStore)

	api := app.Group("/api")

	if err := registerDocsRoutes(app, cfg); err != nil {
		logrus.WithError(err).Warn("api docs disabled")
	}

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.APIToken))

	profile := v1.Group("/profile")
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.UpdateProfile)
	profile.Post("/onboarding", profileHandler.CompleteOnboarding)
	profile.Post("/recalculate", profileHandler.Recalculate)
	profile.Post("/reset", profileHandler.ResetProfile)

	trainer := v1.Group("/trainer")
	trainer.Get("/conversations", trainerHandler.ListConversations)
	trainer.Get("/conversations/:id", trainerHandler.GetConversation)
	trainer.Post("/conversations/:id/activate", trainerHandler.ActivateConversation)
	trainer.Get("/conversations/:id/messages", trainerHandler.GetMessages)
	trainer.Post("/conversations/:id/messages", trainerHandler.SendMessage)
	trainer.Put("/conversations/:id/summary", trainerHandler.SetSummary)
	trainer.Post("/conversations/:id/clear", trainerHandler.ClearConversation)
	trainer.Post("/conversations/:id/automations", trainerHandler.AddAutomation)
	trainer.Post("/conversations/:id/automations/:automationId/complete", trainerHandler.CompleteAutomation)

	meals := v1.Group("/meals")
	meals.Post("/analyze", mealHandler.AnalyzeMeal)
	meals.Post("/analyze-image", mealHandler.AnalyzeMealImage)

	insights := v1.Group("/insights")
	insights.Get("/daily", insightHandler.GetDailyInsight)

	api.Use("/v1/ws", trainerHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(trainerHandler.HandleWebSocket))
}
