package summary

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/summary.yaml
var configFiles embed.FS

// Settings are the summarizer's model and prompt parameters, shipped as
// embedded YAML so the binary carries working defaults. The model can be
// overridden per deployment via SUMMARY_MODEL.
type Settings struct {
	Model          string `yaml:"model"`
	MaxTokens      int64  `yaml:"max_tokens"`
	PromptTemplate string `yaml:"prompt_template"`
}

// LoadSettings parses the embedded summarizer settings.
func LoadSettings() (*Settings, error) {
	data, err := configFiles.ReadFile("config/summary.yaml")
	if err != nil {
		return nil, fmt.Errorf("read summary settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal summary settings: %w", err)
	}

	if s.Model == "" || s.MaxTokens <= 0 || s.PromptTemplate == "" {
		return nil, fmt.Errorf("summary settings incomplete: model, max_tokens and prompt_template are required")
	}

	return &s, nil
}
