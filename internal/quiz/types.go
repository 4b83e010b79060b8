package quiz

import (
	"context"
	"fmt"
)

// Question is one generated multiple-choice item.
//
// Prompt and options may carry inline math markup. Boolean-valued options are
// normalized to literal "Oui"/"Non" tokens by the question source before a
// Question reaches the controller; the controller never sees raw booleans.
type Question struct {
	Name         string
	Subject      string
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Validate checks the structural contract of a generated question.
func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q: expected at least 2 options, got %d", q.Name, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range [0,%d)", q.Name, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// AnswerRecord closes out one answered question. Immutable once created.
type AnswerRecord struct {
	QuestionName   string
	Subject        string
	ElapsedSeconds float64
	Correct        bool
}

// ScoreValue is the final score as returned by the score service, displayed
// verbatim.
type ScoreValue string

// GenerateRequest filters question generation.
type GenerateRequest struct {
	Subjects    []string
	WantsMarkup bool
}

// QuestionSource produces one question per call, typically over HTTP.
type QuestionSource interface {
	// Generate returns one question matching the request's subject filter.
	Generate(ctx context.Context, req GenerateRequest) (Question, error)
}

// ScoreService turns the accumulated answer records into a final score.
type ScoreService interface {
	// Score submits the ordered answer records for the whole series.
	Score(ctx context.Context, records []AnswerRecord) (ScoreValue, error)
}
