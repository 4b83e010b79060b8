// Package play renders an interactive quiz session in the terminal using
// Bubble Tea. It consumes controller snapshots and sends player intents
// back through the Engine interface.
package play

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"mathquiz/internal/quiz"
)

// Engine is the slice of the session controller the UI drives.
type Engine interface {
	Launch(subjects []string, targetCount int) error
	SubmitAnswer(index int) error
	AcknowledgeFeedback() error
	Retry() error
	Abandon()
}

// UI runs the play screen and implements quiz.Observer.
type UI struct {
	events    chan quiz.Snapshot
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches the play UI writing to stdout.
func Start(stdout io.Writer, engine Engine, opts Options) *UI {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan quiz.Snapshot, 256)
	model := NewModel(engine, events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	ui := &UI{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(ui.done)
	}()
	return ui
}

// Close signals the UI to stop.
func (u *UI) Close() {
	if u == nil {
		return
	}
	u.closeOnce.Do(func() {
		close(u.events)
	})
}

// Wait blocks until the UI has exited.
func (u *UI) Wait() {
	if u == nil {
		return
	}
	<-u.done
}

// OnSessionUpdate forwards controller snapshots to the UI.
func (u *UI) OnSessionUpdate(snapshot quiz.Snapshot) {
	if u == nil {
		return
	}
	select {
	case u.events <- snapshot:
	default:
	}
}
