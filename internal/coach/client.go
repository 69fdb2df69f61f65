// Package coach wraps the hosted generative-language API used for meal
// analysis, trainer chat, and daily insights. The client returns errors
// as-is; the service layer above decides the fallback behavior.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// MealAnalysis is the structured result of a meal description or photo.
type MealAnalysis struct {
	FoodName    string     `json:"foodName"`
	Calories    int        `json:"calories"`
	Protein     int        `json:"protein"`
	Carbs       int        `json:"carbs"`
	Fats        int        `json:"fats"`
	Confidence  Confidence `json:"confidence"`
	Explanation string     `json:"explanation"`
}

// DailyInsight is a short coaching nudge derived from the day's stats.
type DailyInsight struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Action  *string `json:"action,omitempty"`
	Type    string  `json:"type"`
}

// UserStats feeds the daily-insight prompt and its heuristic fallback.
type UserStats struct {
	CaloriesTarget    int `json:"calories_target"`
	CaloriesRemaining int `json:"calories_remaining"`
	ProteinTarget     int `json:"protein_target"`
	ProteinRemaining  int `json:"protein_remaining"`
	StreakDays        int `json:"streak_days"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// AnalyzeMealFromText asks the model to estimate the macros of a described
// meal.
func (c *Client) AnalyzeMealFromText(ctx context.Context, description string) (*MealAnalysis, error) {
	prompt := mealAnalysisPrompt(fmt.Sprintf("The user described their meal as: %q", description))
	raw, err := c.generate(ctx, []part{{Text: prompt}})
	if err != nil {
		return nil, err
	}
	return parseMealAnalysis(raw)
}

// AnalyzeMealFromImage sends a base64 photo alongside the analysis prompt.
func (c *Client) AnalyzeMealFromImage(ctx context.Context, base64Image, mimeType string) (*MealAnalysis, error) {
	prompt := mealAnalysisPrompt("Identify the meal in the attached photo.")
	raw, err := c.generate(ctx, []part{
		{Text: prompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: base64Image}},
	})
	if err != nil {
		return nil, err
	}
	return parseMealAnalysis(raw)
}

// ChatWithTrainer returns the assistant's reply to a user message, given the
// profile context string the caller assembled.
func (c *Client) ChatWithTrainer(ctx context.Context, userMessage, contextString string) (string, error) {
	prompt := "You are a friendly, knowledgeable personal fitness trainer inside a mobile app. " +
		"Keep replies short (2-4 sentences), practical, and specific to the user's profile.\n\n" +
		"USER PROFILE:\n" + contextString + "\n\nUSER MESSAGE:\n" + userMessage
	raw, err := c.generate(ctx, []part{{Text: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// GenerateDailyInsight asks the model for one coaching nudge based on
// today's stats.
func (c *Client) GenerateDailyInsight(ctx context.Context, stats UserStats) (*DailyInsight, error) {
	prompt := fmt.Sprintf(
		"You are a fitness coach writing one short daily insight for a user.\n"+
			"Today's stats: %d of %d kcal remaining, %dg of %dg protein remaining, %d-day streak.\n"+
			"Respond with ONLY a JSON object: {\"title\": string, \"message\": string, \"action\": string or null, \"type\": one of \"nutrition\"|\"training\"|\"motivation\"}.",
		stats.CaloriesRemaining, stats.CaloriesTarget, stats.ProteinRemaining, stats.ProteinTarget, stats.StreakDays,
	)
	raw, err := c.generate(ctx, []part{{Text: prompt}})
	if err != nil {
		return nil, err
	}

	var insight DailyInsight
	if err := json.Unmarshal([]byte(extractJSON(raw)), &insight); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}
	if insight.Title == "" || insight.Message == "" {
		return nil, fmt.Errorf("insight response missing title or message")
	}
	return &insight, nil
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call coaching api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("coaching api status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func mealAnalysisPrompt(subject string) string {
	return "You are a nutrition analysis assistant. " + subject + "\n" +
		"Estimate the nutrition facts and respond with ONLY a JSON object:\n" +
		`{"foodName": string, "calories": int, "protein": int, "carbs": int, "fats": int, ` +
		`"confidence": "high"|"medium"|"low", "explanation": string}` + "\n" +
		"All macro values are grams; calories are kcal for the whole meal."
}

func parseMealAnalysis(raw string) (*MealAnalysis, error) {
	var analysis MealAnalysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("parse meal analysis: %w", err)
	}
	if analysis.FoodName == "" {
		return nil, fmt.Errorf("meal analysis missing food name")
	}
	switch analysis.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		analysis.Confidence = ConfidenceLow
	}
	return &analysis, nil
}

// extractJSON strips the markdown code fences models wrap JSON answers in.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		return strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}
