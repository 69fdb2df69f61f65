package models

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type FocusArea string

const (
	FocusNutrition FocusArea = "Nutrition"
	FocusTraining  FocusArea = "Training"
	FocusRecovery  FocusArea = "Recovery"
	FocusMindset   FocusArea = "Mindset"
	FocusProgress  FocusArea = "Progress"
)

type AutomationType string

const (
	AutomationLogFood     AutomationType = "log_food"
	AutomationLogExercise AutomationType = "log_exercise"
	AutomationLogWater    AutomationType = "log_water"
	AutomationOpenPage    AutomationType = "open_page"
	AutomationSendPrompt  AutomationType = "send_prompt"
	AutomationOpenMap     AutomationType = "open_map"
)

type TrainerMessage struct {
	ID        string            `json:"id"`
	Role      MessageRole       `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// TrainerAutomationSuggestion is a proposed one-tap action surfaced by the
// chat UI. CompletedAt nil means pending.
type TrainerAutomationSuggestion struct {
	ID          string         `json:"id"`
	Type        AutomationType `json:"type"`
	Label       string         `json:"label"`
	Description *string        `json:"description,omitempty"`
	Payload     *string        `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at"`
}

// TrainerConversation holds the full message history plus the derived
// summary/focus tags rebuilt after every append.
type TrainerConversation struct {
	ID          string                        `json:"id"`
	Title       string                        `json:"title"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
	Summary     string                        `json:"summary"`
	FocusAreas  []FocusArea                   `json:"focus_areas"`
	Messages    []TrainerMessage              `json:"messages"`
	Automations []TrainerAutomationSuggestion `json:"automations"`
}

func (c *TrainerConversation) Clone() *TrainerConversation {
	if c == nil {
		return nil
	}
	out := *c
	out.FocusAreas = append([]FocusArea(nil), c.FocusAreas...)
	out.Messages = make([]TrainerMessage, len(c.Messages))
	for i, m := range c.Messages {
		out.Messages[i] = m
		if m.Metadata != nil {
			meta := make(map[string]string, len(m.Metadata))
			for k, v := range m.Metadata {
				meta[k] = v
			}
			out.Messages[i].Metadata = meta
		}
	}
	out.Automations = make([]TrainerAutomationSuggestion, len(c.Automations))
	for i, a := range c.Automations {
		out.Automations[i] = a
		out.Automations[i].Description = clonePtr(a.Description)
		out.Automations[i].Payload = clonePtr(a.Payload)
		out.Automations[i].CompletedAt = clonePtr(a.CompletedAt)
	}
	return &out
}
