package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini generates component content through the GenAI API, with the
// deterministic fallback behind it: any API or parse failure degrades to
// fallback content instead of an error, so the builder always gets
// something usable.
type Gemini struct {
	client   *genai.Client
	model    string
	fallback Fallback
}

func NewGemini(apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create GenAI client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) GenerateComponent(ctx context.Context, componentType string, resume Resume) (map[string]any, error) {
	shape, err := g.fallback.GenerateComponent(ctx, componentType, resume)
	if err != nil {
		return nil, err
	}
	shapeJSON, _ := json.Marshal(shape)
	resumeJSON, _ := json.Marshal(resume)

	prompt := fmt.Sprintf(`Generate portfolio website content for a %q section.

Resume data:
%s

Return ONLY a JSON object with exactly this shape (same keys, richer values):
%s

Write engaging, professional first-person copy grounded in the resume.
No markdown fences, no commentary.`, componentType, resumeJSON, shapeJSON)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return shape, nil
	}

	text := strings.TrimSpace(result.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	out := map[string]any{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return shape, nil
	}
	return out, nil
}
