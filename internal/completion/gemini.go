package completion

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini answers through the Gemini API with the same bounds as OpenRouter.
type Gemini struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

func NewGemini(ctx context.Context, apiKey, model string, maxTokens int, temperature float32) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, maxTokens: int32(maxTokens), temperature: temperature}, nil
}

func (g *Gemini) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrMalformedResponse
	}
	return resp.Text(), nil
}
