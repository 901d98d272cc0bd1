package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gembot/internal/llm"
)

// settingsFile is the optional YAML tuning file. Anything left at its
// zero value keeps the built-in default.
type settingsFile struct {
	Generation struct {
		Temperature     *float32 `yaml:"temperature"`
		TopP            *float32 `yaml:"top_p"`
		TopK            *float32 `yaml:"top_k"`
		MaxOutputTokens *int32   `yaml:"max_output_tokens"`
	} `yaml:"generation"`
	Safety struct {
		BlockThreshold string `yaml:"block_threshold"`
	} `yaml:"safety"`
}

// LoadGeneration returns the generation config, overridden by the
// settings file when a path is configured.
func LoadGeneration(path string) (llm.GenerationConfig, error) {
	gen := llm.DefaultGeneration()
	if path == "" {
		return gen, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return gen, fmt.Errorf("read settings: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return gen, fmt.Errorf("parse settings: %w", err)
	}

	if file.Generation.Temperature != nil {
		gen.Temperature = *file.Generation.Temperature
	}
	if file.Generation.TopP != nil {
		gen.TopP = *file.Generation.TopP
	}
	if file.Generation.TopK != nil {
		gen.TopK = *file.Generation.TopK
	}
	if file.Generation.MaxOutputTokens != nil {
		gen.MaxOutputTokens = *file.Generation.MaxOutputTokens
	}
	if file.Safety.BlockThreshold != "" {
		gen.BlockThreshold = file.Safety.BlockThreshold
	}

	return gen, nil
}
