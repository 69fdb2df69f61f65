package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/units"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type profileReader interface {
	Get() models.UserProfile
}

type conversationStore interface {
	InitConversation(ctx context.Context, id string) *models.TrainerConversation
	SetActiveConversation(ctx context.Context, id string)
	Get(id string) (*models.TrainerConversation, bool)
	List() []*models.TrainerConversation
	AppendMessage(ctx context.Context, msg models.TrainerMessage, conversationID string) models.TrainerMessage
	SetSummary(ctx context.Context, summary string, focusAreas []models.FocusArea, conversationID string)
	AddAutomation(ctx context.Context, suggestion models.TrainerAutomationSuggestion, conversationID string) models.TrainerAutomationSuggestion
	CompleteAutomation(ctx context.Context, automationID, conversationID string)
	Clear(ctx context.Context, conversationID string) *models.TrainerConversation
}

type trainerChatClient interface {
	ChatWithTrainer(ctx context.Context, userMessage, contextString string) string
}

// TrainerExchange is the pair of messages produced by one chat turn, plus
// any automation suggestion derived from the user's message.
type TrainerExchange struct {
	UserMessage      models.TrainerMessage
	AssistantMessage models.TrainerMessage
	Automation       *models.TrainerAutomationSuggestion
}

// automationRules maps user-message keywords to one-tap suggestions
// surfaced after the exchange.
var automationRules = []struct {
	keywords []string
	kind     models.AutomationType
	label    string
}{
	{[]string{"ate ", "i ate", "breakfast", "lunch", "dinner", "meal"}, models.AutomationLogFood, "Log this meal"},
	{[]string{"water", "hydrat", "drank"}, models.AutomationLogWater, "Log your water"},
	{[]string{"workout", "trained", "ran ", "went for a run", "gym"}, models.AutomationLogExercise, "Log this workout"},
}

// TrainerService orchestrates a chat turn: it appends the user's message,
// builds the profile context, obtains the assistant reply (fallback
// included), and appends that too. The conversation store re-derives its
// summary and focus tags on each append.
type TrainerService struct {
	profiles      profileReader
	conversations conversationStore
	coaching      trainerChatClient
}

func NewTrainerService(profiles profileReader, conversations conversationStore, coaching trainerChatClient) *TrainerService {
	return &TrainerService{
		profiles:      profiles,
		conversations: conversations,
		coaching:      coaching,
	}
}

func (s *TrainerService) SendMessage(ctx context.Context, conversationID, content string) (*TrainerExchange, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	userMsg := s.conversations.AppendMessage(ctx, models.TrainerMessage{
		Role:    models.RoleUser,
		Content: trimmed,
	}, conversationID)

	profile := s.profiles.Get()
	reply := s.coaching.ChatWithTrainer(ctx, trimmed, BuildProfileContext(profile))

	assistantMsg := s.conversations.AppendMessage(ctx, models.TrainerMessage{
		Role:    models.RoleAssistant,
		Content: reply,
	}, conversationID)

	exchange := &TrainerExchange{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}

	if suggestion, ok := deriveAutomation(trimmed); ok {
		added := s.conversations.AddAutomation(ctx, suggestion, conversationID)
		exchange.Automation = &added
	}

	return exchange, nil
}

func (s *TrainerService) ListConversations() []*models.TrainerConversation {
	return s.conversations.List()
}

func (s *TrainerService) GetConversation(ctx context.Context, id string) *models.TrainerConversation {
	return s.conversations.InitConversation(ctx, id)
}

// ActivateConversation switches the current-thread pointer, initializing the
// conversation first if needed, and returns its snapshot.
func (s *TrainerService) ActivateConversation(ctx context.Context, id string) *models.TrainerConversation {
	s.conversations.SetActiveConversation(ctx, id)
	return s.conversations.InitConversation(ctx, id)
}

func (s *TrainerService) SetSummary(ctx context.Context, id, summary string, focusAreas []models.FocusArea) error {
	if strings.TrimSpace(summary) == "" {
		return ErrInvalidInput
	}
	s.conversations.SetSummary(ctx, summary, focusAreas, id)
	return nil
}

func (s *TrainerService) AddAutomation(ctx context.Context, suggestion models.TrainerAutomationSuggestion, conversationID string) (models.TrainerAutomationSuggestion, error) {
	if suggestion.Type == "" || strings.TrimSpace(suggestion.Label) == "" {
		return models.TrainerAutomationSuggestion{}, ErrInvalidInput
	}
	return s.conversations.AddAutomation(ctx, suggestion, conversationID), nil
}

func (s *TrainerService) CompleteAutomation(ctx context.Context, automationID, conversationID string) {
	s.conversations.CompleteAutomation(ctx, automationID, conversationID)
}

func (s *TrainerService) ClearConversation(ctx context.Context, id string) *models.TrainerConversation {
	return s.conversations.Clear(ctx, id)
}

// BuildProfileContext renders the profile into the context string sent with
// every trainer prompt.
func BuildProfileContext(p models.UserProfile) string {
	var b strings.Builder

	if p.PrimaryGoal != nil {
		fmt.Fprintf(&b, "- Goal: %s\n", *p.PrimaryGoal)
	}
	weightKg := p.CurrentWeight
	if p.WeightUnit == models.WeightUnitLbs {
		weightKg = units.LbsToKg(p.CurrentWeight)
	}
	fmt.Fprintf(&b, "- Current weight: %.1f kg\n", weightKg)
	fmt.Fprintf(&b, "- Height: %.0f cm\n", p.Height)
	if p.BiologicalSex != nil {
		fmt.Fprintf(&b, "- Sex: %s\n", *p.BiologicalSex)
	}
	if p.DateOfBirth != nil {
		fmt.Fprintf(&b, "- Age: %d\n", time.Now().Year()-p.DateOfBirth.Year())
	}
	if p.ActivityLevel != nil {
		fmt.Fprintf(&b, "- Activity level: %s\n", *p.ActivityLevel)
	}
	fmt.Fprintf(&b, "- Daily targets: %d kcal, %dg protein, %dg carbs, %dg fat\n",
		p.DailyCalorieTarget, p.ProteinTarget, p.CarbsTarget, p.FatsTarget)
	if p.StreakDays > 0 {
		fmt.Fprintf(&b, "- Logging streak: %d days\n", p.StreakDays)
	}

	return strings.TrimRight(b.String(), "\n")
}

func deriveAutomation(userMessage string) (models.TrainerAutomationSuggestion, bool) {
	lowered := strings.ToLower(userMessage)
	for _, rule := range automationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				payload := userMessage
				return models.TrainerAutomationSuggestion{
					Type:    rule.kind,
					Label:   rule.label,
					Payload: &payload,
				}, true
			}
		}
	}
	return models.TrainerAutomationSuggestion{}, false
}
