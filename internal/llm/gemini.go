package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type gemini struct {
	client      *genai.Client
	model       string
	visionModel string
	gen         GenerationConfig
}

func newGemini(cfg Config) (LLM, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("gemini requires a project and location")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = model
	}

	// Client construction only wires credentials, no network call; a
	// background context is fine here.
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &gemini{
		client:      client,
		model:       model,
		visionModel: visionModel,
		gen:         cfg.Generation,
	}, nil
}

func (g *gemini) Chat(ctx context.Context, history []Message, input string) (string, error) {
	var contents []*genai.Content

	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	return g.generate(ctx, g.model, contents)
}

func (g *gemini) Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(prompt),
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	return g.generate(ctx, g.visionModel, contents)
}

func (g *gemini) generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	temp := g.gen.Temperature
	topP := g.gen.TopP
	topK := g.gen.TopK

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: g.gen.MaxOutputTokens,
		SafetySettings:  safetySettings(g.gen.BlockThreshold),
	}

	res, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("model returned empty text")
	}

	return text, nil
}

// safetySettings maps one block threshold onto every harm category.
func safetySettings(threshold string) []*genai.SafetySetting {
	var t genai.HarmBlockThreshold

	switch threshold {
	case "none":
		t = genai.HarmBlockThresholdBlockNone
	case "low":
		t = genai.HarmBlockThresholdBlockLowAndAbove
	case "medium":
		t = genai.HarmBlockThresholdBlockMediumAndAbove
	case "high":
		t = genai.HarmBlockThresholdBlockOnlyHigh
	default:
		return nil
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryDangerousContent,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryHarassment,
		genai.HarmCategorySexuallyExplicit,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: t})
	}

	return settings
}
