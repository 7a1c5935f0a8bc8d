package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wolfg259/AIMarketResearch/internal/llm"
	"github.com/wolfg259/AIMarketResearch/internal/persona"
	"github.com/wolfg259/AIMarketResearch/internal/progress"
)

// DefaultCategories are the question subcategories used when the caller
// configures none.
var DefaultCategories = []string{"purchase intent", "comparison to alternatives"}

const (
	defaultWorkers        = 4
	defaultRequestTimeout = 120 * time.Second
)

// Options configures one research run. Generator is the injected
// text-generation capability; tests substitute a scripted fake.
type Options struct {
	Concept    string
	Spec       *persona.Spec
	Generator  llm.Generator
	SampleSize int
	Categories []string

	// Model answers the questionnaire; ElaborateModel rewrites biographies
	// into persona system prompts and defaults to Model. Elaborate can be
	// disabled to interview on the raw sampled biography.
	Model          string
	ElaborateModel string
	Elaborate      bool

	// Seed, when set, makes every sampled biography reproducible: the
	// run seed plus the respondent index seeds each draw, so results do
	// not depend on worker interleaving.
	Seed *uint64

	Workers        int
	RequestTimeout time.Duration

	OutputDir  string
	OutputFile string

	Logger     *slog.Logger
	OnProgress progress.Callback
}

// Run drafts the questionnaire, interviews the panel with a bounded worker
// pool, and persists the result. Respondents whose answers violate the
// format contract are logged and skipped; the run fails only when nothing
// could be collected. It returns the assembled result and the path it was
// saved to.
func Run(ctx context.Context, opts Options) (*Result, string, error) {
	if opts.Generator == nil {
		return nil, "", fmt.Errorf("no text generator configured")
	}
	if opts.Spec == nil {
		return nil, "", fmt.Errorf("no persona spec configured")
	}
	if opts.Concept == "" {
		return nil, "", fmt.Errorf("no product concept configured")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	onProgress := opts.OnProgress
	if onProgress == nil {
		onProgress = progress.NopCallback
	}
	categories := opts.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	sampleSize := opts.SampleSize
	if sampleSize <= 0 {
		sampleSize = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	elaborateModel := opts.ElaborateModel
	if elaborateModel == "" {
		elaborateModel = opts.Model
	}

	start := time.Now()

	onProgress(progress.NewEvent(progress.StageQuestionnaire, "Drafting questionnaire...", 0.05, start))
	q, err := buildQuestionnaireWithTimeout(ctx, opts.Generator, opts.Model, opts.Concept, categories, timeout)
	if err != nil {
		var dErr *DelimiterError
		if errors.As(err, &dErr) {
			logger.ErrorContext(ctx, "questionnaire delimiter violation", "raw", dErr.Raw)
		}
		return nil, "", err
	}
	logger.InfoContext(ctx, "questionnaire drafted", "questions", len(q.Questions))

	records := make([]Record, sampleSize)
	failures := make([]error, sampleSize)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < sampleSize; i++ {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			biography := sampleBiography(opts.Spec, opts.Seed, i)
			rec, err := interviewRespondent(gctx, opts.Generator, q, biography, opts.Concept, opts.Model, elaborateModel, opts.Elaborate, timeout)
			if err != nil {
				// A hung or malformed respondent never aborts the panel;
				// cancellation is the only group-stopping condition.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failures[i] = &RespondentError{Index: i, Err: err}
				logRespondentFailure(gctx, logger, i, err)
			} else {
				records[i] = rec
			}

			n := done.Add(1)
			onProgress(progress.Event{
				Stage:      progress.StageInterviews,
				Message:    fmt.Sprintf("Interviewing respondents (%d/%d)...", n, sampleSize),
				Percent:    0.1 + 0.85*float64(n)/float64(sampleSize),
				Respondent: i + 1,
				Total:      sampleSize,
				Elapsed:    time.Since(start),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	// Gather in submission order, dropping failed respondents.
	result := &Result{
		Concept:   opts.Concept,
		Questions: q.Questions,
		Responses: make([]Record, 0, sampleSize),
	}
	skipped := 0
	var firstFailure error
	for i := 0; i < sampleSize; i++ {
		if failures[i] != nil {
			skipped++
			if firstFailure == nil {
				firstFailure = failures[i]
			}
			continue
		}
		result.Responses = append(result.Responses, records[i])
	}
	if len(result.Responses) == 0 {
		return nil, "", fmt.Errorf("all %d respondents failed: %w", sampleSize, firstFailure)
	}
	if skipped > 0 {
		logger.WarnContext(ctx, "respondents skipped", "skipped", skipped, "total", sampleSize)
	}

	onProgress(progress.NewEvent(progress.StageSave, "Saving results...", 0.97, start))
	path, err := Save(result, opts.OutputDir, opts.OutputFile)
	if err != nil {
		return nil, "", err
	}
	logger.InfoContext(ctx, "results saved", "path", path, "respondents", len(result.Responses))

	onProgress(progress.Event{
		Stage:      progress.StageComplete,
		Message:    fmt.Sprintf("Interviewed %d respondents", len(result.Responses)),
		Percent:    1.0,
		Total:      sampleSize,
		Skipped:    skipped,
		Elapsed:    time.Since(start),
		OutputFile: path,
	})

	return result, path, nil
}

// sampleBiography draws respondent i's biography. With a run seed each
// respondent gets seed+i, reproducible regardless of scheduling.
func sampleBiography(spec *persona.Spec, seed *uint64, i int) string {
	if seed != nil {
		return spec.GenerateBiographySeed(*seed + uint64(i))
	}
	return spec.GenerateBiography()
}

func interviewRespondent(ctx context.Context, gen llm.Generator, q *Questionnaire, biography, concept, model, elaborateModel string, elaborate bool, timeout time.Duration) (Record, error) {
	if elaborate {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		elaborated, err := ElaborateBiography(callCtx, gen, elaborateModel, biography)
		cancel()
		if err != nil {
			return Record{}, err
		}
		biography = elaborated
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	answers, err := AnswerQuestionnaire(callCtx, gen, model, biography, concept, q)
	if err != nil {
		return Record{}, err
	}

	return Record{Biography: biography, Responses: answers}, nil
}

func buildQuestionnaireWithTimeout(ctx context.Context, gen llm.Generator, model, concept string, categories []string, timeout time.Duration) (*Questionnaire, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return BuildQuestionnaire(callCtx, gen, model, concept, categories)
}

// logRespondentFailure records the failure with the raw offending text
// when the error carries one, so contract violations stay inspectable.
func logRespondentFailure(ctx context.Context, logger *slog.Logger, index int, err error) {
	var dErr *DelimiterError
	var cErr *CountMismatchError
	switch {
	case errors.As(err, &dErr):
		logger.WarnContext(ctx, "respondent skipped: delimiter violation", "respondent", index, "raw", dErr.Raw)
	case errors.As(err, &cErr):
		logger.WarnContext(ctx, "respondent skipped: answer count mismatch",
			"respondent", index, "questions", cErr.Questions, "answers", cErr.Answers, "raw", cErr.Raw)
	default:
		logger.WarnContext(ctx, "respondent skipped", "respondent", index, "error", err)
	}
}
