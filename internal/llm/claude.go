package llm

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxRetries = 3
const baseDelay = 2 * time.Second

type claude struct {
	client anthropic.Client
	model  string
	gen    GenerationConfig
}

func newClaude(apiKey, model string, gen GenerationConfig) LLM {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &claude{client: client, model: model, gen: gen}
}

func (c *claude) Chat(ctx context.Context, history []Message, input string) (string, error) {
	messages := c.convertMessages(history)
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(input)))
	return c.generate(ctx, messages)
}

func (c *claude) Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(
			anthropic.NewImageBlockBase64(mimeType, base64.StdEncoding.EncodeToString(image)),
			anthropic.NewTextBlock(prompt),
		),
	}
	return c.generate(ctx, messages)
}

func (c *claude) generate(ctx context.Context, messages []anthropic.MessageParam) (string, error) {
	maxTokens := int(c.gen.MaxOutputTokens)
	if maxTokens == 0 {
		maxTokens = 2048
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(maxTokens),
		Messages:  messages,
	}

	var resp *anthropic.Message
	var err error
	for attempt := range maxRetries {
		resp, err = c.client.Messages.New(ctx, params)
		if err == nil {
			break
		}
		if !isRetryableError(err) {
			return "", err
		}
		if attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<attempt)
			time.Sleep(delay)
		}
	}
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return sb.String(), nil
}

func (c *claude) convertMessages(history []Message) []anthropic.MessageParam {
	var result []anthropic.MessageParam

	for _, msg := range history {
		if msg.Role == RoleModel {
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		} else {
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	return result
}

func isRetryableError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "529") ||
		strings.Contains(errStr, "overloaded") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "502")
}
