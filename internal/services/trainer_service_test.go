package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
)

type stubProfileReader struct {
	profile models.UserProfile
}

func (s *stubProfileReader) Get() models.UserProfile { return s.profile }

type stubConversationStore struct {
	appended    []models.TrainerMessage
	automations []models.TrainerAutomationSuggestion
	cleared     []string
	summary     string
	focusAreas  []models.FocusArea
	completed   []string
	activated   []string
	initialized []string
}

func (s *stubConversationStore) InitConversation(_ context.Context, id string) *models.TrainerConversation {
	s.initialized = append(s.initialized, id)
	return &models.TrainerConversation{ID: id}
}

func (s *stubConversationStore) SetActiveConversation(_ context.Context, id string) {
	s.activated = append(s.activated, id)
}

func (s *stubConversationStore) Get(id string) (*models.TrainerConversation, bool) {
	return &models.TrainerConversation{ID: id}, true
}

func (s *stubConversationStore) List() []*models.TrainerConversation { return nil }

func (s *stubConversationStore) AppendMessage(_ context.Context, msg models.TrainerMessage, _ string) models.TrainerMessage {
	msg.ID = uuid.NewString()
	msg.Timestamp = time.Now()
	msg.Content = strings.TrimSpace(msg.Content)
	s.appended = append(s.appended, msg)
	return msg
}

func (s *stubConversationStore) SetSummary(_ context.Context, summary string, focusAreas []models.FocusArea, _ string) {
	s.summary = summary
	s.focusAreas = focusAreas
}

func (s *stubConversationStore) AddAutomation(_ context.Context, suggestion models.TrainerAutomationSuggestion, _ string) models.TrainerAutomationSuggestion {
	suggestion.ID = uuid.NewString()
	s.automations = append(s.automations, suggestion)
	return suggestion
}

func (s *stubConversationStore) CompleteAutomation(_ context.Context, automationID, _ string) {
	s.completed = append(s.completed, automationID)
}

func (s *stubConversationStore) Clear(_ context.Context, id string) *models.TrainerConversation {
	s.cleared = append(s.cleared, id)
	return &models.TrainerConversation{ID: id}
}

type stubChat struct {
	reply       string
	lastContext string
	lastMessage string
}

func (s *stubChat) ChatWithTrainer(_ context.Context, userMessage, contextString string) string {
	s.lastMessage = userMessage
	s.lastContext = contextString
	return s.reply
}

func TestSendMessageAppendsBothSides(t *testing.T) {
	convs := &stubConversationStore{}
	chat := &stubChat{reply: "Keep your deficit steady."}
	goal := models.GoalLoseWeight
	service := NewTrainerService(&stubProfileReader{profile: models.UserProfile{
		PrimaryGoal:        &goal,
		CurrentWeight:      90,
		WeightUnit:         models.WeightUnitKg,
		Height:             180,
		DailyCalorieTarget: 2366,
		ProteinTarget:      237,
		CarbsTarget:        177,
		FatsTarget:         79,
	}}, convs, chat)

	exchange, err := service.SendMessage(context.Background(), "default", "  how do I break a plateau?  ")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if len(convs.appended) != 2 {
		t.Fatalf("appended %d messages, want 2", len(convs.appended))
	}
	if exchange.UserMessage.Role != models.RoleUser || exchange.UserMessage.Content != "how do I break a plateau?" {
		t.Errorf("user message = %+v", exchange.UserMessage)
	}
	if exchange.AssistantMessage.Role != models.RoleAssistant || exchange.AssistantMessage.Content != "Keep your deficit steady." {
		t.Errorf("assistant message = %+v", exchange.AssistantMessage)
	}
	if !strings.Contains(chat.lastContext, "Goal: lose_weight") || !strings.Contains(chat.lastContext, "2366 kcal") {
		t.Errorf("profile context missing fields: %q", chat.lastContext)
	}
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	service := NewTrainerService(&stubProfileReader{}, &stubConversationStore{}, &stubChat{})

	if _, err := service.SendMessage(context.Background(), "default", "   "); err != ErrInvalidInput {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSendMessageDerivesAutomations(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		wantType models.AutomationType
	}{
		{"meal mention", "I had a huge lunch today", models.AutomationLogFood},
		{"water mention", "did I drink enough water?", models.AutomationLogWater},
		{"workout mention", "just finished my workout", models.AutomationLogExercise},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			convs := &stubConversationStore{}
			service := NewTrainerService(&stubProfileReader{}, convs, &stubChat{reply: "Nice!"})

			exchange, err := service.SendMessage(context.Background(), "default", tc.content)
			if err != nil {
				t.Fatalf("SendMessage: %v", err)
			}
			if exchange.Automation == nil {
				t.Fatal("expected an automation suggestion")
			}
			if exchange.Automation.Type != tc.wantType {
				t.Errorf("automation type = %s, want %s", exchange.Automation.Type, tc.wantType)
			}
		})
	}
}

func TestSendMessageWithoutTriggerHasNoAutomation(t *testing.T) {
	convs := &stubConversationStore{}
	service := NewTrainerService(&stubProfileReader{}, convs, &stubChat{reply: "Sure."})

	exchange, err := service.SendMessage(context.Background(), "default", "what's a good split?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if exchange.Automation != nil {
		t.Errorf("unexpected automation %+v", exchange.Automation)
	}
	if len(convs.automations) != 0 {
		t.Errorf("store recorded %d automations", len(convs.automations))
	}
}

func TestActivateConversationSwitchesAndInitializes(t *testing.T) {
	convs := &stubConversationStore{}
	service := NewTrainerService(&stubProfileReader{}, convs, &stubChat{})

	got := service.ActivateConversation(context.Background(), "bulking")

	if got == nil || got.ID != "bulking" {
		t.Fatalf("conversation = %+v, want id bulking", got)
	}
	if len(convs.activated) != 1 || convs.activated[0] != "bulking" {
		t.Errorf("activations = %v, want [bulking]", convs.activated)
	}
	if len(convs.initialized) != 1 || convs.initialized[0] != "bulking" {
		t.Errorf("initializations = %v, want [bulking]", convs.initialized)
	}
}

func TestSetSummaryRejectsBlank(t *testing.T) {
	service := NewTrainerService(&stubProfileReader{}, &stubConversationStore{}, &stubChat{})

	if err := service.SetSummary(context.Background(), "default", " ", nil); err != ErrInvalidInput {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAddAutomationValidatesInput(t *testing.T) {
	service := NewTrainerService(&stubProfileReader{}, &stubConversationStore{}, &stubChat{})

	_, err := service.AddAutomation(context.Background(), models.TrainerAutomationSuggestion{Label: "no type"}, "default")
	if err != ErrInvalidInput {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestBuildProfileContextOmitsUnsetFields(t *testing.T) {
	got := BuildProfileContext(models.UserProfile{CurrentWeight: 75, WeightUnit: models.WeightUnitKg, Height: 175})

	if strings.Contains(got, "Goal:") || strings.Contains(got, "Sex:") || strings.Contains(got, "Age:") {
		t.Errorf("context includes unset fields: %q", got)
	}
	if !strings.Contains(got, "75.0 kg") {
		t.Errorf("context missing weight: %q", got)
	}
}
