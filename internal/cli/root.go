package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wolfg259/AIMarketResearch/internal/concept"
	"github.com/wolfg259/AIMarketResearch/internal/interview"
	"github.com/wolfg259/AIMarketResearch/internal/llm"
	"github.com/wolfg259/AIMarketResearch/internal/observability"
	"github.com/wolfg259/AIMarketResearch/internal/persona"
	"github.com/wolfg259/AIMarketResearch/internal/progress"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "panelist",
	Short: "Interview simulated consumer panels about product concepts",
	Long: `panelist samples synthetic respondents from a persona definition,
drafts a questionnaire about a product concept, and interviews each
respondent through a text-generation service.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("panelist %s\n", Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interview a sampled panel about a product concept",
	RunE:  runPanel,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Sample respondent biographies without interviewing them",
	RunE:  runPreview,
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a commented example persona definition",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var (
	flagInput          string
	flagPersonas       string
	flagSamples        int
	flagModel          string
	flagElaborateModel string
	flagNoElaborate    bool
	flagCategories     string
	flagSeed           uint64
	flagWorkers        int
	flagTimeout        time.Duration
	flagOutput         string
	flagOutputDir      string
	flagVerbose        bool
	flagForce          bool
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(initCmd)

	runCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Product concept (text file path, PDF path, or URL)")
	runCmd.Flags().StringVarP(&flagPersonas, "personas", "p", "", "Persona definition YAML file")
	runCmd.Flags().IntVarP(&flagSamples, "samples", "n", 10, "Number of respondents to interview")
	runCmd.Flags().StringVarP(&flagModel, "model", "m", "haiku", "Interview model: "+strings.Join(llm.KnownModels(), ", "))
	runCmd.Flags().StringVar(&flagElaborateModel, "elaborate-model", "", "Model for biography elaboration (defaults to --model)")
	runCmd.Flags().BoolVar(&flagNoElaborate, "no-elaborate", false, "Interview on the raw sampled biography, skipping elaboration")
	runCmd.Flags().StringVarP(&flagCategories, "categories", "c", "", "Question subcategories, comma-separated (default \"purchase intent, comparison to alternatives\")")
	runCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Random seed for reproducible persona sampling")
	runCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 4, "Concurrent interviews")
	runCmd.Flags().DurationVar(&flagTimeout, "timeout", 120*time.Second, "Per-request timeout")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Result filename (default run-<ulid>.json)")
	runCmd.Flags().StringVar(&flagOutputDir, "output-dir", interview.DefaultOutputDir, "Directory for result files")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")

	previewCmd.Flags().StringVarP(&flagPersonas, "personas", "p", "", "Persona definition YAML file")
	previewCmd.Flags().IntVarP(&flagSamples, "samples", "n", 5, "Number of biographies to sample")
	previewCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Random seed for reproducible sampling")

	initCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing file")
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runPanel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if flagInput == "" {
		return fmt.Errorf("--input (-i) is required")
	}
	if flagPersonas == "" {
		return fmt.Errorf("--personas (-p) is required; run `panelist init` to create one")
	}
	if flagSamples < 1 {
		return fmt.Errorf("invalid sample size %d: must be at least 1", flagSamples)
	}
	if flagWorkers < 1 {
		return fmt.Errorf("invalid worker count %d: must be at least 1", flagWorkers)
	}

	elaborateModel := flagElaborateModel
	if elaborateModel == "" {
		elaborateModel = flagModel
	}
	if err := checkAPIKeys(flagModel, elaborateModel, !flagNoElaborate); err != nil {
		return err
	}

	var categories []string
	for _, c := range strings.Split(flagCategories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	spec, err := persona.Load(flagPersonas)
	if err != nil {
		return err
	}

	models := []string{flagModel}
	if !flagNoElaborate && elaborateModel != flagModel {
		models = append(models, elaborateModel)
	}
	gen, err := llm.NewRouter(models...)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if flagVerbose {
		logger = observability.InitLogger(true)
	}
	if observability.TracingEnabled() {
		tp, err := observability.InitTracer(ctx, "panelist", Version)
		if err != nil {
			return err
		}
		defer tp.Shutdown(ctx)
	}

	opts := interview.Options{
		Spec:           spec,
		Generator:      gen,
		SampleSize:     flagSamples,
		Categories:     categories,
		Model:          flagModel,
		ElaborateModel: flagElaborateModel,
		Elaborate:      !flagNoElaborate,
		Workers:        flagWorkers,
		RequestTimeout: flagTimeout,
		OutputDir:      flagOutputDir,
		OutputFile:     flagOutput,
		Logger:         logger,
	}
	if cmd.Flags().Changed("seed") {
		seed := flagSeed
		opts.Seed = &seed
	}

	// Wire up progress bar when not in verbose mode
	if !flagVerbose {
		r := progress.NewBarRenderer(os.Stdout)
		defer r.Finish()
		opts.OnProgress = r.Handle
	}

	start := time.Now()
	if opts.OnProgress != nil {
		opts.OnProgress(progress.NewEvent(progress.StageConcept, "Loading product concept...", 0.01, start))
	}
	c, err := concept.NewLoader(flagInput).Load(ctx, flagInput)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "concept loaded",
		"source", concept.DetectSource(flagInput).String(), "title", c.Title, "words", c.WordCount)
	opts.Concept = c.Text

	_, _, err = interview.Run(ctx, opts)
	return err
}

func runPreview(cmd *cobra.Command, args []string) error {
	if flagPersonas == "" {
		return fmt.Errorf("--personas (-p) is required; run `panelist init` to create one")
	}
	if flagSamples < 1 {
		return fmt.Errorf("invalid sample size %d: must be at least 1", flagSamples)
	}

	spec, err := persona.Load(flagPersonas)
	if err != nil {
		return err
	}

	seeded := cmd.Flags().Changed("seed")
	for i := 0; i < flagSamples; i++ {
		var bio string
		if seeded {
			bio = spec.GenerateBiographySeed(flagSeed + uint64(i))
		} else {
			bio = spec.GenerateBiography()
		}
		if bio == "" {
			bio = "(empty biography: no attributes configured)"
		}
		fmt.Printf("%2d. %s\n", i+1, bio)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "personas.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	if !flagForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, persona.ExampleConfig(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Wrote example persona definition to %s\n", path)
	return nil
}

// checkAPIKeys verifies credentials for every model the run will call.
// Nova models authenticate through the AWS SDK credential chain, which
// surfaces its own error on first use.
func checkAPIKeys(model, elaborateModel string, elaborate bool) error {
	needsAnthropic := llm.IsClaudeModel(model)
	if elaborate && llm.IsClaudeModel(elaborateModel) {
		needsAnthropic = true
	}
	if needsAnthropic && os.Getenv("ANTHROPIC_API_KEY") == "" {
		return fmt.Errorf("missing required environment variable ANTHROPIC_API_KEY")
	}
	return nil
}
