package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without bot token")
	}
}

func TestLoadGeminiRequiresProject(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GCP_PROJECT", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without GCP project")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("CONVERSATION_TIMEOUT", "10m") // registers cleanup
	os.Unsetenv("CONVERSATION_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ConversationTimeout.Minutes() != 10 {
		t.Errorf("expected 10m default timeout, got %s", cfg.ConversationTimeout)
	}

	if cfg.LLM.Location != "us-central1" {
		t.Errorf("expected default location, got %s", cfg.LLM.Location)
	}

	if cfg.Storage.Enabled() {
		t.Error("storage should be disabled without credentials")
	}
}

func TestLoadGenerationDefaults(t *testing.T) {
	gen, err := LoadGeneration("")
	if err != nil {
		t.Fatal(err)
	}

	if gen.Temperature != 0.7 || gen.TopP != 1 || gen.TopK != 1 {
		t.Errorf("unexpected sampling defaults: %+v", gen)
	}

	if gen.MaxOutputTokens != 2048 {
		t.Errorf("expected 2048 max output tokens, got %d", gen.MaxOutputTokens)
	}

	if gen.BlockThreshold != "none" {
		t.Errorf("expected no safety blocking by default, got %q", gen.BlockThreshold)
	}
}

func TestLoadGenerationOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	settings := `
generation:
  temperature: 0.2
  max_output_tokens: 512
safety:
  block_threshold: medium
`
	if err := os.WriteFile(path, []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}

	gen, err := LoadGeneration(path)
	if err != nil {
		t.Fatal(err)
	}

	if gen.Temperature != 0.2 {
		t.Errorf("expected overridden temperature, got %v", gen.Temperature)
	}

	if gen.MaxOutputTokens != 512 {
		t.Errorf("expected overridden max tokens, got %d", gen.MaxOutputTokens)
	}

	// untouched keys keep defaults
	if gen.TopP != 1 || gen.TopK != 1 {
		t.Errorf("expected default top_p/top_k, got %+v", gen)
	}

	if gen.BlockThreshold != "medium" {
		t.Errorf("expected medium threshold, got %q", gen.BlockThreshold)
	}
}

func TestLoadGenerationMissingFile(t *testing.T) {
	if _, err := LoadGeneration("/does/not/exist.yml"); err == nil {
		t.Fatal("expected error for missing settings file")
	}
}
