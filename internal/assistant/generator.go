package assistant

import (
	"context"
	"errors"
	"fmt"

	"nexus/internal/models"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned by the generator used when no API key is set.
var ErrNotConfigured = errors.New("assistant API key not configured")

// Turn is one message of a conversation sent to the model.
type Turn struct {
	Role models.ChatRole
	Text string
}

// Request is a single generation call.
type Request struct {
	System string
	Turns  []Turn
	// Schema, when set, asks for a JSON response matching it.
	Schema *genai.Schema
}

// Generator produces text from a hosted model.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiGenerator calls the Gemini API through the Gen AI SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGenerator returns a Gemini-backed generator, or one that fails every
// call when apiKey is empty.
func NewGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return unconfigured{}, nil
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate sends req and returns the concatenated text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	contents := make([]*genai.Content, 0, len(req.Turns))
	for _, t := range req.Turns {
		contents = append(contents, genai.NewContentFromText(t.Text, genai.Role(t.Role)))
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

type unconfigured struct{}

func (unconfigured) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// insightSchema constrains the attendance analysis response.
func insightSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"insights": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"target":    str(),
						"riskLevel": str(),
						"analysis":  str(),
						"action":    str(),
					},
					Required: []string{"target", "riskLevel", "analysis", "action"},
				},
			},
			"generalTrend": str(),
		},
		Required: []string{"insights", "generalTrend"},
	}
}
