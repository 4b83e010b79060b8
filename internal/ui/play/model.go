package play

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mathquiz/internal/quiz"
)

// Options configures the play UI model.
type Options struct {
	// Subjects is the selectable catalogue; Selected the initially enabled
	// subset (nil means all of them).
	Subjects []string
	Selected []string
	// Questions is the initial series length.
	Questions int
	// Renderer post-processes math span contents before display. Nil keeps
	// the text as-is.
	Renderer func(string) string
	NoColor  bool
	// Rand drives the option color shuffle. Nil seeds from the clock.
	Rand *rand.Rand
}

// Model renders the quiz session using Bubble Tea.
type Model struct {
	state    State
	engine   Engine
	events   <-chan quiz.Snapshot
	spinner  spinner.Model
	renderer func(string) string
	rng      *rand.Rand
	noColor  bool
	width    int
}

// NewModel constructs a play model for an engine and its snapshot stream.
func NewModel(engine Engine, events <-chan quiz.Snapshot, opts Options) Model {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = func(text string) string { return text }
	}
	questions := opts.Questions
	if questions < 1 {
		questions = 3
	}

	selected := make(map[string]bool, len(opts.Subjects))
	for _, subject := range opts.Subjects {
		selected[subject] = opts.Selected == nil
	}
	for _, subject := range opts.Selected {
		selected[subject] = true
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		state: State{
			Screen:    ScreenWelcome,
			Subjects:  opts.Subjects,
			Selected:  selected,
			Questions: questions,
		},
		engine:   engine,
		events:   events,
		spinner:  sp,
		renderer: renderer,
		rng:      rng,
		noColor:  opts.NoColor,
	}
}

// Init waits for the first snapshot and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.events), m.spinner.Tick)
}

// Update consumes snapshots, key presses and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case snapshotMsg:
		m.state = Reduce(m.state, typed.Snapshot, m.rng)
		return m, waitForSnapshot(m.events)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	switch m.state.Screen {
	case ScreenWelcome:
		return renderWelcome(m.state, m.noColor)
	case ScreenScore:
		return renderScore(m.state, m.renderer, m.noColor)
	default:
		return renderSession(m.state, m.spinner.View(), m.renderer, m.noColor)
	}
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		m.engine.Abandon()
		return m, tea.Quit
	}
	switch m.state.Screen {
	case ScreenWelcome:
		return m.handleWelcomeKey(key)
	case ScreenScore:
		return m.handleScoreKey(key)
	default:
		return m.handleSessionKey(key)
	}
}

func (m Model) handleWelcomeKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch value := key.String(); value {
	case "q":
		return m, tea.Quit
	case "enter":
		subjects := m.state.SelectedSubjects()
		if len(subjects) == 0 {
			return m, nil
		}
		_ = m.engine.Launch(subjects, m.state.Questions)
		return m, nil
	case "up", "+", "right":
		m.state.Questions++
		return m, nil
	case "down", "-", "left":
		if m.state.Questions > 1 {
			m.state.Questions--
		}
		return m, nil
	default:
		if index := digitIndex(value); index >= 0 && index < len(m.state.Subjects) {
			subject := m.state.Subjects[index]
			m.state.Selected[subject] = !m.state.Selected[subject]
		}
		return m, nil
	}
}

func (m Model) handleSessionKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	snapshot := m.state.Snapshot
	switch value := key.String(); value {
	case "q":
		m.engine.Abandon()
		return m, tea.Quit
	case "esc":
		m.engine.Abandon()
		m.state.Screen = ScreenWelcome
		return m, nil
	case "enter", "r":
		if snapshot.Err != nil {
			_ = m.engine.Retry()
			return m, nil
		}
		if snapshot.Phase == quiz.PhaseFeedback {
			_ = m.engine.AcknowledgeFeedback()
		}
		return m, nil
	case " ":
		if snapshot.Phase == quiz.PhaseFeedback {
			_ = m.engine.AcknowledgeFeedback()
		}
		return m, nil
	default:
		if snapshot.Phase != quiz.PhasePresenting || snapshot.Question == nil {
			return m, nil
		}
		if index := answerIndex(value); index >= 0 && index < len(snapshot.Question.Options) {
			_ = m.engine.SubmitAnswer(index)
		}
		return m, nil
	}
}

func (m Model) handleScoreKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "r", "enter":
		subjects := m.state.SelectedSubjects()
		if len(subjects) == 0 {
			return m, nil
		}
		_ = m.engine.Launch(subjects, m.state.Questions)
		return m, nil
	case "esc":
		m.engine.Abandon()
		m.state.Screen = ScreenWelcome
		return m, nil
	}
	return m, nil
}

// digitIndex maps "1".."9" onto 0..8.
func digitIndex(value string) int {
	if len(value) == 1 && value[0] >= '1' && value[0] <= '9' {
		return int(value[0] - '1')
	}
	return -1
}

// answerIndex maps the answer keys onto option indexes: digits first, then
// the letters the original terminal quiz used.
func answerIndex(value string) int {
	if index := digitIndex(value); index >= 0 {
		return index
	}
	if len(value) == 1 && value[0] >= 'a' && value[0] <= 'd' {
		return int(value[0] - 'a')
	}
	return -1
}

// snapshotMsg wraps a controller snapshot for Bubble Tea.
type snapshotMsg struct {
	Snapshot quiz.Snapshot
}

// waitForSnapshot blocks until the next snapshot is available.
func waitForSnapshot(events <-chan quiz.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		snapshot, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg{Snapshot: snapshot}
	}
}
