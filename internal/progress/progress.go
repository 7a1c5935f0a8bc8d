package progress

import "time"

// Stage identifies which part of a research run is active.
type Stage string

const (
	StageConcept       Stage = "concept"
	StageQuestionnaire Stage = "questionnaire"
	StageInterviews    Stage = "interviews"
	StageSave          Stage = "save"
	StageComplete      Stage = "complete"
)

// Event carries progress information from the run to the renderer.
type Event struct {
	Stage      Stage
	Message    string
	Percent    float64 // 0.0 to 1.0
	Respondent int     // 1-based index of the respondent just finished
	Total      int     // sample size
	Skipped    int     // respondents dropped for contract violations so far
	Elapsed    time.Duration
	Error      error
	// OutputFile is set on StageComplete with the persisted result path.
	OutputFile string
}

// Callback is the function signature for progress event handlers.
type Callback func(Event)

// NopCallback is a no-op progress callback for tests and silent mode.
func NopCallback(Event) {}

// NewEvent creates an Event with common fields populated.
func NewEvent(stage Stage, msg string, pct float64, start time.Time) Event {
	return Event{
		Stage:   stage,
		Message: msg,
		Percent: pct,
		Elapsed: time.Since(start),
	}
}
