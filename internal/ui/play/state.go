package play

import (
	"github.com/charmbracelet/lipgloss"

	"mathquiz/internal/quiz"
)

// Screen identifies which top-level view is on display.
type Screen int

const (
	// ScreenWelcome shows the settings and waits for a launch.
	ScreenWelcome Screen = iota
	// ScreenSession covers the whole series: fetching, answering, feedback
	// and scoring.
	ScreenSession
	// ScreenScore shows the final score and the answer table.
	ScreenScore
)

// State captures the play UI state. The session part mirrors the latest
// controller snapshot; the welcome part is purely local.
type State struct {
	Screen Screen

	// Welcome settings.
	Subjects  []string
	Selected  map[string]bool
	Questions int

	// Latest session view.
	Snapshot quiz.Snapshot
	// Colors holds one color per option, reshuffled for every question.
	Colors []lipgloss.Color
}

// SelectedSubjects returns the enabled subjects in catalogue order.
func (s State) SelectedSubjects() []string {
	var subjects []string
	for _, subject := range s.Subjects {
		if s.Selected[subject] {
			subjects = append(subjects, subject)
		}
	}
	return subjects
}
