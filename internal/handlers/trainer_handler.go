package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/services"
	trainerws "github.com/JunaidParamberi/MacroMateBack/internal/websocket"
)

type trainerApplicationService interface {
	ListConversations() []*models.TrainerConversation
	GetConversation(ctx context.Context, id string) *models.TrainerConversation
	ActivateConversation(ctx context.Context, id string) *models.TrainerConversation
	SendMessage(ctx context.Context, conversationID, content string) (*services.TrainerExchange, error)
	SetSummary(ctx context.Context, id, summary string, focusAreas []models.FocusArea) error
	AddAutomation(ctx context.Context, suggestion models.TrainerAutomationSuggestion, conversationID string) (models.TrainerAutomationSuggestion, error)
	CompleteAutomation(ctx context.Context, automationID, conversationID string)
	ClearConversation(ctx context.Context, id string) *models.TrainerConversation
}

type TrainerHandler struct {
	service  trainerApplicationService
	hub      *trainerws.Hub
	apiToken string
}

func NewTrainerHandler(service trainerApplicationService, hub *trainerws.Hub, apiToken string) *TrainerHandler {
	return &TrainerHandler{
		service:  service,
		hub:      hub,
		apiToken: apiToken,
	}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type setSummaryRequest struct {
	Summary    string             `json:"summary"`
	FocusAreas []models.FocusArea `json:"focus_areas"`
}

type addAutomationRequest struct {
	Type        models.AutomationType `json:"type"`
	Label       string                `json:"label"`
	Description *string               `json:"description"`
	Payload     *string               `json:"payload"`
}

func (h *TrainerHandler) ListConversations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"conversations": h.service.ListConversations()})
}

// GetConversation creates the conversation on first access, so a fresh
// install lands on a usable thread with the welcome message in place.
func (h *TrainerHandler) GetConversation(c *fiber.Ctx) error {
	conversation := h.service.GetConversation(c.Context(), c.Params("id"))
	return c.JSON(fiber.Map{"conversation": conversation})
}

// ActivateConversation makes the conversation the current thread, so
// follow-up calls without an explicit id land here.
func (h *TrainerHandler) ActivateConversation(c *fiber.Ctx) error {
	conversation := h.service.ActivateConversation(c.Context(), c.Params("id"))
	return c.JSON(fiber.Map{"conversation": conversation})
}

// GetMessages pages through a conversation newest-first.
func (h *TrainerHandler) GetMessages(c *fiber.Ctx) error {
	conversation := h.service.GetConversation(c.Context(), c.Params("id"))

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total := len(conversation.Messages)
	start := (page - 1) * limit
	messages := make([]models.TrainerMessage, 0, limit)
	for i := 0; i < limit; i++ {
		idx := total - 1 - start - i
		if idx < 0 {
			break
		}
		messages = append(messages, conversation.Messages[idx])
	}

	return c.JSON(fiber.Map{
		"messages":   messages,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *TrainerHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exchange, err := h.service.SendMessage(c.Context(), c.Params("id"), req.Content)
	if err != nil {
		return mapTrainerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_message":      exchange.UserMessage,
		"assistant_message": exchange.AssistantMessage,
		"automation":        exchange.Automation,
	})
}

func (h *TrainerHandler) SetSummary(c *fiber.Ctx) error {
	var req setSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateFocusAreas(req.FocusAreas); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	if err := h.service.SetSummary(c.Context(), c.Params("id"), req.Summary, req.FocusAreas); err != nil {
		return mapTrainerError(c, err)
	}

	conversation := h.service.GetConversation(c.Context(), c.Params("id"))
	return c.JSON(fiber.Map{"conversation": conversation})
}

func (h *TrainerHandler) AddAutomation(c *fiber.Ctx) error {
	var req addAutomationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateAutomationType(req.Type); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	suggestion, err := h.service.AddAutomation(c.Context(), models.TrainerAutomationSuggestion{
		Type:        req.Type,
		Label:       req.Label,
		Description: req.Description,
		Payload:     req.Payload,
	}, c.Params("id"))
	if err != nil {
		return mapTrainerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"automation": suggestion})
}

// CompleteAutomation is idempotent: unknown ids are ignored and repeated
// completions just refresh the timestamp.
func (h *TrainerHandler) CompleteAutomation(c *fiber.Ctx) error {
	h.service.CompleteAutomation(c.Context(), c.Params("automationId"), c.Params("id"))
	conversation := h.service.GetConversation(c.Context(), c.Params("id"))
	return c.JSON(fiber.Map{"conversation": conversation})
}

func (h *TrainerHandler) ClearConversation(c *fiber.Ctx) error {
	conversation := h.service.ClearConversation(c.Context(), c.Params("id"))
	return c.JSON(fiber.Map{"conversation": conversation})
}

func (h *TrainerHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	if h.apiToken != "" {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			authHeader := strings.TrimSpace(c.Get("Authorization"))
			if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
	}

	conversationID := c.Query("conversation_id")
	if conversationID == "" {
		conversationID = trainerws.DefaultConversation
	}
	c.Locals("conversation_id", conversationID)
	return c.Next()
}

func (h *TrainerHandler) HandleWebSocket(conn *websocket.Conn) {
	conversationID, _ := conn.Locals("conversation_id").(string)
	client := trainerws.NewClient(h.hub, conn, conversationID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

func mapTrainerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process trainer request"})
	}
}
