package interview

import "fmt"

// DelimiterError reports that service output did not honor the answer
// separator: the split produced a single segment where several were
// expected. It carries the raw text so the caller can log or inspect it.
type DelimiterError struct {
	Stage string // "questionnaire" or "answers"
	Raw   string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("[%s] response not separated by the expected delimiter", e.Stage)
}

// CountMismatchError reports that the number of answer segments does not
// match the number of questions. Answers are never truncated or padded to
// fit; the respondent is surfaced to the caller instead.
type CountMismatchError struct {
	Questions int
	Answers   int
	Raw       string
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("[answers] got %d answers for %d questions", e.Answers, e.Questions)
}

// RespondentError wraps a failure for one simulated respondent with its
// submission index.
type RespondentError struct {
	Index int
	Err   error
}

func (e *RespondentError) Error() string {
	return fmt.Sprintf("respondent %d: %v", e.Index, e.Err)
}

func (e *RespondentError) Unwrap() error {
	return e.Err
}
