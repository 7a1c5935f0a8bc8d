package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

var claudeModels = map[string]string{
	"haiku":  "claude-haiku-4-5-20251001",
	"sonnet": "claude-sonnet-4-5-20250929",
}

// ClaudeGenerator runs completions against the Anthropic Messages API.
// The API key comes from ANTHROPIC_API_KEY.
type ClaudeGenerator struct{}

func NewClaudeGenerator() *ClaudeGenerator {
	return &ClaudeGenerator{}
}

func (g *ClaudeGenerator) Complete(ctx context.Context, req Request) (string, error) {
	client := anthropic.NewClient()

	modelID := claudeModels[req.Model]
	if modelID == "" {
		modelID = claudeModels["haiku"]
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelID),
		MaxTokens:   maxTokensOrDefault(req),
		Temperature: anthropic.Float(temperatureOrDefault(req)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		message, err := client.Messages.New(ctx, params)
		if err != nil {
			lastErr = fmt.Errorf("Claude API error (attempt %d/%d): %w", attempt, maxRetries, err)
			if attempt < maxRetries {
				if err := backoffSleep(ctx, backoff); err != nil {
					return "", err
				}
				backoff *= backoffMult
			}
			continue
		}

		text := extractClaudeText(message)
		if text == "" {
			lastErr = fmt.Errorf("empty response from Claude (attempt %d/%d)", attempt, maxRetries)
			if attempt < maxRetries {
				if err := backoffSleep(ctx, backoff); err != nil {
					return "", err
				}
				backoff *= backoffMult
			}
			continue
		}

		return text, nil
	}

	return "", lastErr
}

func extractClaudeText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
