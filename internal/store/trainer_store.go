package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/storage"
)

const (
	trainerStateName = "trainer_chat"

	// DefaultConversationID is the conversation used when callers don't
	// name one.
	DefaultConversationID = "default"

	// MaxConversationMessages caps a conversation's history; the oldest
	// messages are trimmed first once it is exceeded.
	MaxConversationMessages = 80
)

const welcomeMessage = "Hey, I'm your MacroMate trainer! Ask me anything about training, nutrition, or recovery and I'll tailor my advice to your goals."

// focusKeywords drives the derived focus-area tags. Matching is a
// case-insensitive substring scan over user messages only.
var focusKeywords = []struct {
	area     models.FocusArea
	keywords []string
}{
	{models.FocusNutrition, []string{"protein", "carb", "calorie", "macro", "meal", "diet", "food", "nutrition", "snack"}},
	{models.FocusTraining, []string{"workout", "training", "exercise", "gym", "lift", "cardio", "strength", "squat"}},
	{models.FocusRecovery, []string{"sleep", "rest", "recovery", "sore", "stretch", "injury"}},
	{models.FocusMindset, []string{"motivat", "stress", "habit", "mindset", "discipline", "consistent"}},
	{models.FocusProgress, []string{"progress", "weight", "goal", "streak", "milestone", "plateau"}},
}

type trainerState struct {
	Conversations map[string]*models.TrainerConversation `json:"conversations"`
	ActiveID      string                                 `json:"active_conversation_id"`
}

// TrainerStore owns the persisted conversation map. Conversations are
// created lazily on first access and reset to a fresh welcome state rather
// than hard-deleted.
type TrainerStore struct {
	mu    sync.Mutex
	blobs storage.BlobStore
	state trainerState
}

func NewTrainerStore(ctx context.Context, blobs storage.BlobStore) *TrainerStore {
	s := &TrainerStore{
		blobs: blobs,
		state: trainerState{Conversations: make(map[string]*models.TrainerConversation)},
	}

	data, err := blobs.Load(ctx, trainerStateName)
	switch {
	case err == nil:
		var loaded trainerState
		if unmarshalErr := json.Unmarshal(data, &loaded); unmarshalErr != nil {
			logrus.WithError(unmarshalErr).Warn("trainer chat snapshot unreadable, starting fresh")
		} else {
			if loaded.Conversations == nil {
				loaded.Conversations = make(map[string]*models.TrainerConversation)
			}
			s.state = loaded
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		logrus.WithError(err).Warn("trainer chat load failed, starting fresh")
	}

	return s
}

// InitConversation creates a conversation with a welcome message if one
// doesn't exist yet. Idempotent.
func (s *TrainerStore) InitConversation(ctx context.Context, id string) *models.TrainerConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, created := s.ensureLocked(id)
	if created {
		s.persistLocked(ctx)
	}
	return conv.Clone()
}

// SetActiveConversation switches the current conversation pointer,
// initializing the conversation first if needed.
func (s *TrainerStore) SetActiveConversation(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, _ := s.ensureLocked(id)
	s.state.ActiveID = conv.ID
	s.persistLocked(ctx)
}

func (s *TrainerStore) ActiveConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ActiveID == "" {
		return DefaultConversationID
	}
	return s.state.ActiveID
}

// Get returns a snapshot of the conversation, or ok=false when it was never
// initialized.
func (s *TrainerStore) Get(id string) (*models.TrainerConversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.state.Conversations[s.resolveLocked(id)]
	if !ok {
		return nil, false
	}
	return conv.Clone(), true
}

// List returns snapshots of every conversation, most recently updated first.
func (s *TrainerStore) List() []*models.TrainerConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.TrainerConversation, 0, len(s.state.Conversations))
	for _, conv := range s.state.Conversations {
		out = append(out, conv.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// AppendMessage finalizes the message (id, timestamp, trimmed content),
// appends it to the target conversation, trims the history to the cap, marks
// the conversation active, and re-derives summary and focus tags. Returns
// the finalized message.
func (s *TrainerStore) AppendMessage(ctx context.Context, msg models.TrainerMessage, conversationID string) models.TrainerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, _ := s.ensureLocked(conversationID)
	now := time.Now()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}
	msg.Content = strings.TrimSpace(msg.Content)

	conv.Messages = append(conv.Messages, msg)
	if overflow := len(conv.Messages) - MaxConversationMessages; overflow > 0 {
		conv.Messages = append([]models.TrainerMessage(nil), conv.Messages[overflow:]...)
	}
	conv.UpdatedAt = now
	s.state.ActiveID = conv.ID

	s.refreshInsightsLocked(conv)
	s.persistLocked(ctx)
	return msg
}

// SetSummary overrides the derived summary (and optionally focus areas)
// with an externally produced one.
func (s *TrainerStore) SetSummary(ctx context.Context, summary string, focusAreas []models.FocusArea, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, _ := s.ensureLocked(conversationID)
	conv.Summary = summary
	if focusAreas != nil {
		conv.FocusAreas = append([]models.FocusArea(nil), focusAreas...)
	}
	conv.UpdatedAt = time.Now()
	s.persistLocked(ctx)
}

// AddAutomation appends a suggestion, assigning id and creation time when
// absent, and returns the finalized suggestion.
func (s *TrainerStore) AddAutomation(ctx context.Context, suggestion models.TrainerAutomationSuggestion, conversationID string) models.TrainerAutomationSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, _ := s.ensureLocked(conversationID)
	if suggestion.ID == "" {
		suggestion.ID = uuid.NewString()
	}
	if suggestion.CreatedAt.IsZero() {
		suggestion.CreatedAt = time.Now()
	}
	conv.Automations = append(conv.Automations, suggestion)
	s.persistLocked(ctx)
	return suggestion
}

// CompleteAutomation stamps the suggestion's completion time. Completing an
// unknown id is a no-op; completing twice just overwrites the stamp.
func (s *TrainerStore) CompleteAutomation(ctx context.Context, automationID, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.state.Conversations[s.resolveLocked(conversationID)]
	if !ok {
		return
	}
	for i := range conv.Automations {
		if conv.Automations[i].ID == automationID {
			now := time.Now()
			conv.Automations[i].CompletedAt = &now
			s.persistLocked(ctx)
			return
		}
	}
}

// Clear replaces the conversation with a fresh welcome state, discarding all
// messages and automations.
func (s *TrainerStore) Clear(ctx context.Context, conversationID string) *models.TrainerConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.resolveLocked(conversationID)
	conv := newConversation(id)
	s.state.Conversations[id] = conv
	s.persistLocked(ctx)
	return conv.Clone()
}

// RefreshInsights recomputes the rolling summary and focus tags. AppendMessage
// already does this; the explicit form exists for callers that edit state
// out of band.
func (s *TrainerStore) RefreshInsights(ctx context.Context, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, _ := s.ensureLocked(conversationID)
	s.refreshInsightsLocked(conv)
	s.persistLocked(ctx)
}

func (s *TrainerStore) resolveLocked(id string) string {
	if id != "" {
		return id
	}
	if s.state.ActiveID != "" {
		return s.state.ActiveID
	}
	return DefaultConversationID
}

func (s *TrainerStore) ensureLocked(id string) (conv *models.TrainerConversation, created bool) {
	resolved := s.resolveLocked(id)
	conv, ok := s.state.Conversations[resolved]
	if !ok {
		conv = newConversation(resolved)
		s.state.Conversations[resolved] = conv
		created = true
	}
	return conv, created
}

func (s *TrainerStore) refreshInsightsLocked(conv *models.TrainerConversation) {
	conv.Summary = deriveSummary(conv.Messages)
	conv.FocusAreas = deriveFocusAreas(conv.Messages)
}

func (s *TrainerStore) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		logrus.WithError(err).Error("marshal trainer chat state")
		return
	}
	if err := s.blobs.Save(ctx, trainerStateName, data); err != nil {
		logrus.WithError(err).Warn("persist trainer chat state")
	}
}

func newConversation(id string) *models.TrainerConversation {
	now := time.Now()
	return &models.TrainerConversation{
		ID:        id,
		Title:     "Trainer Chat",
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []models.TrainerMessage{{
			ID:        uuid.NewString(),
			Role:      models.RoleAssistant,
			Content:   welcomeMessage,
			Timestamp: now,
		}},
		FocusAreas:  []models.FocusArea{},
		Automations: []models.TrainerAutomationSuggestion{},
	}
}

// deriveSummary joins the last three user messages into a bullet line.
func deriveSummary(messages []models.TrainerMessage) string {
	var recent []string
	for i := len(messages) - 1; i >= 0 && len(recent) < 3; i-- {
		if messages[i].Role == models.RoleUser {
			recent = append(recent, messages[i].Content)
		}
	}
	// Collected newest-first; present oldest-first.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return strings.Join(recent, " • ")
}

// deriveFocusAreas tags the conversation with every topic category whose
// keywords appear in any user message.
func deriveFocusAreas(messages []models.TrainerMessage) []models.FocusArea {
	var corpus strings.Builder
	for _, msg := range messages {
		if msg.Role == models.RoleUser {
			corpus.WriteString(strings.ToLower(msg.Content))
			corpus.WriteString("\n")
		}
	}
	text := corpus.String()

	areas := make([]models.FocusArea, 0, len(focusKeywords))
	for _, group := range focusKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				areas = append(areas, group.area)
				break
			}
		}
	}
	return areas
}
