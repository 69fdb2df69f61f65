package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/JunaidParamberi/MacroMateBack/internal/coach"
)

// coachClient is the slice of the coaching API client this service needs.
type coachClient interface {
	AnalyzeMealFromText(ctx context.Context, description string) (*coach.MealAnalysis, error)
	AnalyzeMealFromImage(ctx context.Context, base64Image, mimeType string) (*coach.MealAnalysis, error)
	ChatWithTrainer(ctx context.Context, userMessage, contextString string) (string, error)
	GenerateDailyInsight(ctx context.Context, stats coach.UserStats) (*coach.DailyInsight, error)
}

const trainerFallbackReply = "Sorry, I'm having trouble reaching my coaching brain right now. Your message is saved — ask me again in a moment!"

// fallbackCaloriesByKeyword backs the text-analysis heuristic when the
// coaching API is unavailable: first keyword hit wins.
var fallbackCaloriesByKeyword = []struct {
	keyword  string
	calories int
}{
	{"salad", 350},
	{"soup", 300},
	{"smoothie", 280},
	{"oatmeal", 320},
	{"eggs", 250},
	{"sandwich", 450},
	{"burger", 650},
	{"pizza", 600},
	{"pasta", 550},
	{"steak", 500},
	{"rice", 400},
	{"chicken", 420},
}

const fallbackDefaultCalories = 400

// CoachingService fronts the hosted coaching API and absorbs its failures:
// every operation degrades to a deterministic fallback value instead of
// propagating an error, so callers never see a raw network or parse failure.
type CoachingService struct {
	client coachClient
}

func NewCoachingService(client coachClient) *CoachingService {
	return &CoachingService{client: client}
}

// AnalyzeMealFromText estimates a described meal's macros, falling back to a
// keyword-based calorie guess.
func (s *CoachingService) AnalyzeMealFromText(ctx context.Context, description string) *coach.MealAnalysis {
	analysis, err := s.client.AnalyzeMealFromText(ctx, description)
	if err != nil {
		logrus.WithError(err).Warn("meal text analysis failed, using heuristic fallback")
		return heuristicMealAnalysis(description)
	}
	return analysis
}

// AnalyzeMealFromImage estimates a photographed meal's macros, falling back
// to a fixed low-confidence placeholder.
func (s *CoachingService) AnalyzeMealFromImage(ctx context.Context, base64Image, mimeType string) *coach.MealAnalysis {
	analysis, err := s.client.AnalyzeMealFromImage(ctx, base64Image, mimeType)
	if err != nil {
		logrus.WithError(err).Warn("meal image analysis failed, using placeholder")
		return &coach.MealAnalysis{
			FoodName:    "Unknown Food",
			Calories:    fallbackDefaultCalories,
			Protein:     20,
			Carbs:       40,
			Fats:        15,
			Confidence:  coach.ConfidenceLow,
			Explanation: "Couldn't analyze the photo; logged a generic estimate you can edit.",
		}
	}
	return analysis
}

// ChatWithTrainer returns the assistant reply, or the fixed apologetic
// fallback when the call fails.
func (s *CoachingService) ChatWithTrainer(ctx context.Context, userMessage, contextString string) string {
	reply, err := s.client.ChatWithTrainer(ctx, userMessage, contextString)
	if err != nil {
		logrus.WithError(err).Warn("trainer chat failed, using fallback reply")
		return trainerFallbackReply
	}
	return reply
}

// GenerateDailyInsight returns a coaching nudge, or one of three heuristic
// insights picked by threshold checks on the remaining calories/protein.
func (s *CoachingService) GenerateDailyInsight(ctx context.Context, stats coach.UserStats) *coach.DailyInsight {
	insight, err := s.client.GenerateDailyInsight(ctx, stats)
	if err != nil {
		logrus.WithError(err).Warn("daily insight failed, using heuristic fallback")
		return heuristicInsight(stats)
	}
	return insight
}

func heuristicMealAnalysis(description string) *coach.MealAnalysis {
	lowered := strings.ToLower(description)
	calories := fallbackDefaultCalories
	name := "Estimated Meal"
	for _, entry := range fallbackCaloriesByKeyword {
		if strings.Contains(lowered, entry.keyword) {
			calories = entry.calories
			name = strings.ToUpper(entry.keyword[:1]) + entry.keyword[1:]
			break
		}
	}

	// Rough 25/40/35 calorie split converted to grams.
	return &coach.MealAnalysis{
		FoodName:    name,
		Calories:    calories,
		Protein:     calories * 25 / 100 / 4,
		Carbs:       calories * 40 / 100 / 4,
		Fats:        calories * 35 / 100 / 9,
		Confidence:  coach.ConfidenceLow,
		Explanation: "Estimated from the description keywords; AI analysis was unavailable.",
	}
}

func heuristicInsight(stats coach.UserStats) *coach.DailyInsight {
	switch {
	case stats.CaloriesRemaining > 500:
		action := "Log your next meal"
		return &coach.DailyInsight{
			Title:   "Fuel up",
			Message: "You still have plenty of calories left today. A balanced meal now keeps your energy steady through the evening.",
			Action:  &action,
			Type:    "nutrition",
		}
	case stats.ProteinRemaining > 40:
		action := "Add a protein-rich snack"
		return &coach.DailyInsight{
			Title:   "Mind the protein gap",
			Message: "Calories look on track, but you're short on protein. A quick high-protein snack closes the gap.",
			Action:  &action,
			Type:    "nutrition",
		}
	default:
		return &coach.DailyInsight{
			Title:   "On track",
			Message: "You're pacing well against today's targets. Keep it up and your streak grows tomorrow.",
			Type:    "motivation",
		}
	}
}
