package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wolfg259/AIMarketResearch/internal/llm"
)

// fakeGenerator returns scripted text per request, recording every call.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []llm.Request
	respond func(req llm.Request) (string, error)
}

func (f *fakeGenerator) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.respond(req)
}

func (f *fakeGenerator) recorded() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.calls...)
}

func scripted(text string) *fakeGenerator {
	return &fakeGenerator{respond: func(llm.Request) (string, error) { return text, nil }}
}

func TestBuildQuestionnaire(t *testing.T) {
	gen := scripted("How likely are you to buy this?\n\nHow does it compare to what you use today?\n")

	q, err := BuildQuestionnaire(context.Background(), gen, "haiku",
		"A meal-replacement drink", []string{"purchase intent", "comparison to alternatives"})
	if err != nil {
		t.Fatalf("BuildQuestionnaire: %v", err)
	}

	want := []string{
		"How likely are you to buy this?",
		"How does it compare to what you use today?",
	}
	if diff := cmp.Diff(want, q.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(q.Text, "How likely") {
		t.Errorf("Text should keep the raw questionnaire, got %q", q.Text)
	}

	calls := gen.recorded()
	if len(calls) != 1 {
		t.Fatalf("expected 1 generator call, got %d", len(calls))
	}
	prompt := calls[0].Prompt
	if !strings.Contains(prompt, "A meal-replacement drink") {
		t.Error("prompt missing the product concept")
	}
	if !strings.Contains(prompt, "purchase intent, comparison to alternatives") {
		t.Error("prompt missing the comma-joined categories")
	}
	if calls[0].System != "" {
		t.Error("questionnaire drafting should not carry a persona system framing")
	}
}

func TestBuildQuestionnaireDelimiterViolation(t *testing.T) {
	gen := scripted("1. Would you buy it? 2. Why? 3. How often?")

	_, err := BuildQuestionnaire(context.Background(), gen, "haiku",
		"concept", []string{"purchase intent", "comparison to alternatives"})
	var dErr *DelimiterError
	if !errors.As(err, &dErr) {
		t.Fatalf("err = %v, want *DelimiterError", err)
	}
	if dErr.Stage != "questionnaire" {
		t.Errorf("Stage = %q, want questionnaire", dErr.Stage)
	}
	if !strings.Contains(dErr.Raw, "Would you buy it?") {
		t.Error("DelimiterError should carry the raw offending text")
	}
}

func TestBuildQuestionnaireSingleCategory(t *testing.T) {
	// One requested category legitimately yields one segment; that is not
	// a delimiter violation.
	gen := scripted("Would you buy it?")

	q, err := BuildQuestionnaire(context.Background(), gen, "haiku", "concept", []string{"purchase intent"})
	if err != nil {
		t.Fatalf("BuildQuestionnaire: %v", err)
	}
	if len(q.Questions) != 1 {
		t.Errorf("got %d questions, want 1", len(q.Questions))
	}
}

func TestBuildQuestionnaireEmptyResponse(t *testing.T) {
	gen := scripted("   \n\n  ")
	_, err := BuildQuestionnaire(context.Background(), gen, "haiku", "concept", []string{"purchase intent"})
	var dErr *DelimiterError
	if !errors.As(err, &dErr) {
		t.Fatalf("err = %v, want *DelimiterError for empty response", err)
	}
}

func TestBuildQuestionnaireNoCategories(t *testing.T) {
	gen := scripted("irrelevant")
	if _, err := BuildQuestionnaire(context.Background(), gen, "haiku", "concept", nil); err == nil {
		t.Error("no categories should error before calling the service")
	}
	if len(gen.recorded()) != 0 {
		t.Error("generator should not be called without categories")
	}
}

func TestBuildQuestionnaireGeneratorError(t *testing.T) {
	gen := &fakeGenerator{respond: func(llm.Request) (string, error) {
		return "", fmt.Errorf("rate limited")
	}}
	_, err := BuildQuestionnaire(context.Background(), gen, "haiku", "concept", []string{"purchase intent"})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v, want wrapped service error", err)
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"two", "a\n\nb", []string{"a", "b"}},
		{"surrounding whitespace", "\n\na\n\nb\n\n", []string{"a", "b"}},
		{"blank segment dropped", "a\n\n\n\nb", []string{"a", "b"}},
		{"single", "only one", []string{"only one"}},
		{"empty", "  ", nil},
		{"internal single newline kept", "a\nstill a\n\nb", []string{"a\nstill a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitSegments(tt.in)); diff != "" {
				t.Errorf("splitSegments(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
