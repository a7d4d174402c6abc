package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/diogo/folio/internal/models"
)

// contentGenerator is the subset of *genai.Models used by GenAI
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAI is the backend built on the official Google Gen AI SDK
type GenAI struct {
	models contentGenerator
}

// NewGenAI creates a GenAI backend. baseURL, when set, overrides the API host.
func NewGenAI(ctx context.Context, apiKey, baseURL string) (*GenAI, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{models: client.Models}, nil
}

// Name implements Generator
func (g *GenAI) Name() string { return "genai" }

// Generate implements Generator
func (g *GenAI) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.models.GenerateContent(ctx, req.Model, toContents(req), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

// toContents maps history plus the new message to SDK contents
func toContents(req Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, genai.NewContentFromText(turn.Text, sdkRole(turn.Role)))
	}
	return append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))
}

func sdkRole(r models.Role) genai.Role {
	if r == models.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}
