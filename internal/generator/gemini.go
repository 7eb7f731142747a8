package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// GeminiModel generates text with Google's Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiModel(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiModel{client: client, model: model, logger: logger}, nil
}

func (g *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("gemini generate", zap.String("model", g.model), zap.Int("prompt.length", len(prompt)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from gemini")
	}
	return resp.Text(), nil
}
