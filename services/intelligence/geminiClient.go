package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"athletetech/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator produces one assistant reply given the prior turns.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, history []models.AIMessage) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemPrompt))

	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string, history []models.AIMessage) (string, error) {
	cs := g.model.StartChat()
	for _, m := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  m.Role,
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// unavailableGenerator answers every request with err. It stands in when no
// Gemini client could be built so the rest of the API still starts.
type unavailableGenerator struct {
	err error
}

func Unavailable(err error) Generator {
	return unavailableGenerator{err: err}
}

func (u unavailableGenerator) GenerateContent(context.Context, string, []models.AIMessage) (string, error) {
	return "", u.err
}
