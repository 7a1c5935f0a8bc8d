// Package llm wraps the external text-generation services behind a single
// Generator interface so callers can inject a scripted fake in tests.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Request is one blocking text-generation call. System carries the persona
// framing (empty for plain completions); Prompt is the task instruction.
type Request struct {
	Model       string // model alias, resolved per backend
	System      string
	Prompt      string
	MaxTokens   int64 // 0 means defaultMaxTokens
	Temperature float64
}

// Generator produces a completion for a request. Implementations retry
// transient service failures with backoff; they never retry or repair
// format-contract violations, which are the caller's to classify.
type Generator interface {
	Complete(ctx context.Context, req Request) (string, error)
}

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
	maxRetries         = 3
	initialBackoff     = 1 * time.Second
	backoffMult        = 2
)

// NewGenerator selects a backend by model alias.
func NewGenerator(model string) (Generator, error) {
	switch {
	case claudeModels[model] != "":
		return NewClaudeGenerator(), nil
	case novaModels[model] != "":
		return NewNovaGenerator()
	default:
		return nil, fmt.Errorf("unknown model %q: must be one of %s", model, strings.Join(KnownModels(), ", "))
	}
}

// NewRouter builds a generator serving every listed model alias. When the
// aliases span backends, each request is dispatched on its Model field.
func NewRouter(models ...string) (Generator, error) {
	r := &routingGenerator{}
	for _, model := range models {
		gen, err := r.backendFor(model)
		if err != nil {
			return nil, err
		}
		if r.fallback == nil {
			r.fallback = gen
		}
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no models configured")
	}
	return r, nil
}

// routingGenerator dispatches requests across backends by model alias.
// Backends are built once, on the first alias that needs them.
type routingGenerator struct {
	claude   Generator
	nova     Generator
	fallback Generator
}

func (r *routingGenerator) backendFor(model string) (Generator, error) {
	switch {
	case claudeModels[model] != "":
		if r.claude == nil {
			r.claude = NewClaudeGenerator()
		}
		return r.claude, nil
	case novaModels[model] != "":
		if r.nova == nil {
			gen, err := NewNovaGenerator()
			if err != nil {
				return nil, err
			}
			r.nova = gen
		}
		return r.nova, nil
	default:
		return nil, fmt.Errorf("unknown model %q: must be one of %s", model, strings.Join(KnownModels(), ", "))
	}
}

func (r *routingGenerator) Complete(ctx context.Context, req Request) (string, error) {
	switch {
	case claudeModels[req.Model] != "" && r.claude != nil:
		return r.claude.Complete(ctx, req)
	case novaModels[req.Model] != "" && r.nova != nil:
		return r.nova.Complete(ctx, req)
	default:
		return r.fallback.Complete(ctx, req)
	}
}

// KnownModels returns every supported model alias, sorted.
func KnownModels() []string {
	var names []string
	for name := range claudeModels {
		names = append(names, name)
	}
	for name := range novaModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsClaudeModel reports whether the alias routes to the Anthropic backend.
// The CLI uses this to check for ANTHROPIC_API_KEY up front.
func IsClaudeModel(model string) bool {
	return claudeModels[model] != ""
}

func maxTokensOrDefault(req Request) int64 {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

func temperatureOrDefault(req Request) float64 {
	if req.Temperature > 0 {
		return req.Temperature
	}
	return defaultTemperature
}

// backoffSleep waits for the backoff interval unless the context ends first.
func backoffSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
