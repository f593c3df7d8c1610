package domain

import "strings"

// AnswerUnknown is the sentinel the model returns when no location is present.
const AnswerUnknown = "UNKNOWN"

// DefaultCountry is the region hint used when a request does not carry one.
const DefaultCountry = "US"

// IsAbsentAnswer reports whether a model answer means "no location".
func IsAbsentAnswer(answer string) bool {
	a := strings.TrimSpace(answer)
	return a == "" || strings.EqualFold(a, AnswerUnknown)
}

// ExtractionRequest is a single extraction call. Zero values are filled from configuration.
type ExtractionRequest struct {
	Text            string
	Country         string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// Span is a half-open [Start, End) range of character (rune) offsets into the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ProcessingStep records one timed stage of an extraction call.
type ProcessingStep struct {
	Step        string `json:"step"`
	Description string `json:"description"`
	DurationMS  int64  `json:"duration_ms"`
}

// ExtractionResult is the outcome of one extraction call. An empty Answer means no
// location was found; in that case Granularity is none, Confidence is 0 and Highlight is nil.
type ExtractionResult struct {
	Answer           string
	Granularity      Granularity
	Explanation      string
	Confidence       float64
	Model            string
	Country          string
	IsRemote         bool
	RemoteIndicators []string
	Highlight        *Span
	PromptVersion    string
	Outcome          ExtractionOutcome
	Steps            []ProcessingStep
}

// Found reports whether the result carries a location.
func (r *ExtractionResult) Found() bool {
	return r != nil && r.Answer != ""
}
