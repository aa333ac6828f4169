package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const intentSystemPrompt = `You are an intent detection AI for a storefront chatbot.
Return ONLY valid JSON: {"intent":"<label>","confidence":<0-1>}.
Allowed labels: order, appointment, pricing, help, greeting, unknown.`

// OpenAIClassifier detects intents with a chat-completion call.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier creates a classifier for the given model.
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// DetectIntent sends the text to the model and maps the returned
// label to an Intent. The reported confidence is not thresholded;
// the label is taken as-is.
func (c *OpenAIClassifier) DetectIntent(ctx context.Context, text string) (models.Intent, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: intentSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			Temperature: 0.3,
			MaxTokens:   60,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return models.IntentUnknown, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.IntentUnknown, fmt.Errorf("no choices in completion response")
	}

	var out struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return models.IntentUnknown, fmt.Errorf("parse intent response: %w", err)
	}

	return models.Intent(strings.ToLower(strings.TrimSpace(out.Intent))), nil
}
