package quiz

import "mathquiz/internal/markup"

// PresentedQuestion is the tokenized view of the current question.
type PresentedQuestion struct {
	Name    string
	Subject string
	Prompt  []markup.Segment
	Options [][]markup.Segment
}

// Feedback carries the correct option shown after a wrong answer.
type Feedback struct {
	CorrectIndex int
	CorrectText  []markup.Segment
}

// Snapshot is a point-in-time, read-only view of the session. The controller
// emits only phase plus data; it knows nothing about rendering.
type Snapshot struct {
	Phase          Phase
	SeriesID       string
	Subjects       []string
	TargetCount    int
	CurrentOrdinal int
	TimerRunning   bool
	Question       *PresentedQuestion
	Feedback       *Feedback
	Score          ScoreValue
	Err            error
	Records        []AnswerRecord
}

// Observer receives a snapshot after every state change. Callbacks run
// outside the controller's lock, in the goroutine that caused the transition.
type Observer interface {
	// OnSessionUpdate delivers the state reached by the latest transition.
	OnSessionUpdate(snapshot Snapshot)
}
