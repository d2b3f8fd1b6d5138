package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"mindnotes/internal/config"
	"mindnotes/internal/domain/services"
)

// AnthropicSummarizer generates page summaries with a single-shot Claude
// messages call.
type AnthropicSummarizer struct {
	client   *anthropic.Client
	settings *Settings
}

// New creates a Summarizer based on the config. Returns nil when no API key
// is set, meaning AI summaries are disabled and callers use the naive
// fallback only.
func New(cfg *config.Config) (services.Summarizer, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, nil
	}

	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	if cfg.SummaryModel != "" {
		settings.Model = cfg.SummaryModel
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))

	return &AnthropicSummarizer{
		client:   &client,
		settings: settings,
	}, nil
}

// Summarize generates a 3-4 sentence summary of the given page text.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text to summarize")
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.settings.Model),
		MaxTokens: s.settings.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(s.settings.PromptTemplate, text))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var out strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}

	summaryText := strings.TrimSpace(out.String())
	if summaryText == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return summaryText, nil
}
