package play

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mathquiz/internal/quiz"
)

// recordingEngine captures the intents the model sends.
type recordingEngine struct {
	launches  [][]string
	counts    []int
	answers   []int
	acked     int
	retried   int
	abandoned int
}

func (e *recordingEngine) Launch(subjects []string, targetCount int) error {
	e.launches = append(e.launches, subjects)
	e.counts = append(e.counts, targetCount)
	return nil
}

func (e *recordingEngine) SubmitAnswer(index int) error {
	e.answers = append(e.answers, index)
	return nil
}

func (e *recordingEngine) AcknowledgeFeedback() error {
	e.acked++
	return nil
}

func (e *recordingEngine) Retry() error {
	e.retried++
	return nil
}

func (e *recordingEngine) Abandon() {
	e.abandoned++
}

func newTestModel(engine Engine) Model {
	return NewModel(engine, nil, Options{
		Subjects:  []string{"Algebra", "Arithmetic", "Geometry", "Trigonometry"},
		Questions: 3,
		NoColor:   true,
		Rand:      testRand(),
	})
}

func pressKey(t *testing.T, model Model, key string) Model {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	next, _ := model.Update(msg)
	typed, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T, want Model", next)
	}
	return typed
}

func applySnapshot(t *testing.T, model Model, snapshot quiz.Snapshot) Model {
	t.Helper()
	next, _ := model.Update(snapshotMsg{Snapshot: snapshot})
	typed, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T, want Model", next)
	}
	return typed
}

func TestWelcomeLaunch(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)

	// Drop Geometry, raise the count, launch.
	model = pressKey(t, model, "3")
	model = pressKey(t, model, "up")
	model = pressKey(t, model, "enter")

	if len(engine.launches) != 1 {
		t.Fatalf("expected 1 launch, got %d", len(engine.launches))
	}
	want := []string{"Algebra", "Arithmetic", "Trigonometry"}
	if !equalStrings(engine.launches[0], want) {
		t.Fatalf("launched with %v, want %v", engine.launches[0], want)
	}
	if engine.counts[0] != 4 {
		t.Fatalf("launched with %d questions, want 4", engine.counts[0])
	}
}

func TestWelcomeRefusesEmptySelection(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)

	for _, key := range []string{"1", "2", "3", "4"} {
		model = pressKey(t, model, key)
	}
	model = pressKey(t, model, "enter")

	if len(engine.launches) != 0 {
		t.Fatalf("expected no launch with zero subjects, got %d", len(engine.launches))
	}
}

func TestWelcomeQuestionCountFloor(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)

	for i := 0; i < 10; i++ {
		model = pressKey(t, model, "down")
	}
	if model.state.Questions != 1 {
		t.Fatalf("question count went below 1: %d", model.state.Questions)
	}
}

func TestSessionAnswerKeys(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:          quiz.PhasePresenting,
		SeriesID:       "s1",
		CurrentOrdinal: 1,
		TargetCount:    3,
		Question:       presentedQuestion("q_one"),
	})

	model = pressKey(t, model, "2")
	model = pressKey(t, model, "d")
	if len(engine.answers) != 2 || engine.answers[0] != 1 || engine.answers[1] != 3 {
		t.Fatalf("answers %v, want [1 3]", engine.answers)
	}

	// Out-of-range digit is ignored.
	model = pressKey(t, model, "5")
	if len(engine.answers) != 2 {
		t.Fatalf("out-of-range key reached the engine: %v", engine.answers)
	}
}

func TestSessionIgnoresAnswersOutsidePresenting(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:          quiz.PhaseFetchingQuestion,
		SeriesID:       "s1",
		CurrentOrdinal: 1,
		TargetCount:    3,
	})

	pressKey(t, model, "1")
	if len(engine.answers) != 0 {
		t.Fatalf("answer accepted while fetching: %v", engine.answers)
	}
}

func TestFeedbackAcknowledge(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:          quiz.PhaseFeedback,
		SeriesID:       "s1",
		CurrentOrdinal: 1,
		TargetCount:    3,
		Question:       presentedQuestion("q_one"),
		Feedback:       &quiz.Feedback{CorrectIndex: 0},
	})

	model = pressKey(t, model, "enter")
	model = pressKey(t, model, " ")
	if engine.acked != 2 {
		t.Fatalf("acknowledged %d times, want 2", engine.acked)
	}
}

func TestErrorRetry(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:          quiz.PhaseFetchingQuestion,
		SeriesID:       "s1",
		CurrentOrdinal: 1,
		TargetCount:    3,
		Err:            quiz.ErrFetchFailed,
	})

	model = pressKey(t, model, "r")
	if engine.retried != 1 {
		t.Fatalf("retried %d times, want 1", engine.retried)
	}
}

func TestEscapeAbandonsToWelcome(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:          quiz.PhasePresenting,
		SeriesID:       "s1",
		CurrentOrdinal: 1,
		TargetCount:    3,
		Question:       presentedQuestion("q_one"),
	})

	model = pressKey(t, model, "esc")
	if engine.abandoned != 1 {
		t.Fatalf("abandoned %d times, want 1", engine.abandoned)
	}
	if model.state.Screen != ScreenWelcome {
		t.Fatalf("screen %d after escape, want welcome", model.state.Screen)
	}
}

func TestScoreReplay(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:    quiz.PhaseComplete,
		SeriesID: "s1",
		Score:    quiz.ScoreValue("Votre score est de 2 bonne réponse sur 3"),
		Records: []quiz.AnswerRecord{
			{QuestionName: "q_one", Subject: "Algebra", ElapsedSeconds: 1.5, Correct: true},
		},
	})

	model = pressKey(t, model, "r")
	if len(engine.launches) != 1 {
		t.Fatalf("replay launched %d times, want 1", len(engine.launches))
	}
}

func TestViewShowsQuestionAndOptions(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:          quiz.PhasePresenting,
		SeriesID:       "s1",
		CurrentOrdinal: 2,
		TargetCount:    3,
		Question:       presentedQuestion("q_one"),
	})

	view := model.View()
	for _, want := range []string{"Question 2/3", "Résoudre x+1=2", "A. 1", "D. 4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewShowsScoreTable(t *testing.T) {
	engine := &recordingEngine{}
	model := newTestModel(engine)
	model = applySnapshot(t, model, quiz.Snapshot{
		Phase:    quiz.PhaseComplete,
		SeriesID: "s1",
		Score:    quiz.ScoreValue("Votre score est de 1 bonne réponse sur 2"),
		Records: []quiz.AnswerRecord{
			{QuestionName: "q_pair", Subject: "Arithmetic", ElapsedSeconds: 2.0, Correct: true},
			{QuestionName: "q_image", Subject: "Algebra", ElapsedSeconds: 4.5, Correct: false},
		},
	})

	view := model.View()
	for _, want := range []string{"Votre score est de 1 bonne réponse sur 2", "q_pair", "Juste", "Faux"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
