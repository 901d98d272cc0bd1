package llm

import "context"

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type Config struct {
	Provider    string
	ProjectID   string
	Location    string
	Model       string
	VisionModel string
	APIKey      string
	BaseURL     string
	Generation  GenerationConfig
}

// GenerationConfig carries the sampling parameters forwarded to the
// inference provider on every call.
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
	// BlockThreshold applies to every harm category. Empty means the
	// provider default; "none" disables content blocking entirely.
	BlockThreshold string
}

// DefaultGeneration mirrors the production tuning: mildly creative
// sampling, generous output budget, no safety blocking.
func DefaultGeneration() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.7,
		TopP:            1,
		TopK:            1,
		MaxOutputTokens: 2048,
		BlockThreshold:  "none",
	}
}

type Message struct {
	Role    string
	Content string
}

type LLM interface {
	// Chat sends the accumulated transcript plus one new user input and
	// returns the generated reply. The transcript is not mutated.
	Chat(ctx context.Context, history []Message, input string) (string, error)

	// Describe sends one image plus a caption request and returns the
	// generated description.
	Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}
