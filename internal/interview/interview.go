// Package interview orchestrates one market-research run: draft a
// questionnaire for a product concept, interview a panel of sampled
// personas against the text-generation capability, and persist the
// assembled result.
package interview

import (
	"context"
	"fmt"

	"github.com/wolfg259/AIMarketResearch/internal/llm"
)

// Record is one respondent's interview: the persona framing they answered
// under and their answers, in question order.
type Record struct {
	Biography string   `json:"biography"`
	Responses []string `json:"responses"`
}

// Result is the persisted outcome of a full run.
type Result struct {
	Concept   string   `json:"concept"`
	Questions []string `json:"questions"`
	Responses []Record `json:"responses"`
}

// ElaborateBiography rewrites a sampled biography into a fuller
// second-person persona description suitable as a system prompt.
func ElaborateBiography(ctx context.Context, gen llm.Generator, model, biography string) (string, error) {
	text, err := gen.Complete(ctx, llm.Request{
		Model:  model,
		Prompt: buildElaboratePrompt(biography),
	})
	if err != nil {
		return "", fmt.Errorf("elaborate biography: %w", err)
	}
	return text, nil
}

// AnswerQuestionnaire submits the questionnaire to the generator under the
// persona framing and splits the answers on the delimiter. A single
// segment for a multi-question questionnaire is a *DelimiterError; any
// other count disagreement is a *CountMismatchError.
func AnswerQuestionnaire(ctx context.Context, gen llm.Generator, model, biography, concept string, q *Questionnaire) ([]string, error) {
	text, err := gen.Complete(ctx, llm.Request{
		Model:  model,
		System: biography,
		Prompt: buildAnswerPrompt(concept, q.Text),
	})
	if err != nil {
		return nil, fmt.Errorf("answer questionnaire: %w", err)
	}

	answers := splitSegments(text)
	if len(answers) == 1 && len(q.Questions) > 1 {
		return nil, &DelimiterError{Stage: "answers", Raw: text}
	}
	if len(answers) != len(q.Questions) {
		return nil, &CountMismatchError{
			Questions: len(q.Questions),
			Answers:   len(answers),
			Raw:       text,
		}
	}
	return answers, nil
}
