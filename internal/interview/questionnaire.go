package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfg259/AIMarketResearch/internal/llm"
)

// Questionnaire is the drafted set of open questions. Text keeps the raw
// questionnaire exactly as generated, so respondents answer the same
// wording the drafting model produced; Questions holds the split segments.
type Questionnaire struct {
	Text      string
	Questions []string
}

// BuildQuestionnaire asks the generator to draft one open question per
// category, separated by the delimiter. A response that collapses to a
// single segment when several categories were requested is returned as a
// *DelimiterError.
func BuildQuestionnaire(ctx context.Context, gen llm.Generator, model, concept string, categories []string) (*Questionnaire, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("no question categories configured")
	}

	text, err := gen.Complete(ctx, llm.Request{
		Model:  model,
		Prompt: buildQuestionnairePrompt(concept, categories),
	})
	if err != nil {
		return nil, fmt.Errorf("draft questionnaire: %w", err)
	}

	questions := splitSegments(text)
	if len(questions) == 0 {
		return nil, &DelimiterError{Stage: "questionnaire", Raw: text}
	}
	if len(questions) == 1 && len(categories) > 1 {
		return nil, &DelimiterError{Stage: "questionnaire", Raw: text}
	}

	return &Questionnaire{
		Text:      strings.TrimSpace(text),
		Questions: questions,
	}, nil
}

// splitSegments splits generated text on the delimiter, trimming each
// segment and dropping empty ones.
func splitSegments(text string) []string {
	var segments []string
	for _, seg := range strings.Split(strings.TrimSpace(text), Delimiter) {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
