package play

import (
	"math/rand"

	"mathquiz/internal/palette"
	"mathquiz/internal/quiz"
)

// Reduce folds a controller snapshot into the UI state. It decides which
// screen is on display and reshuffles the option colors whenever a new
// question arrives, so every presentation gets its own color order.
func Reduce(state State, snapshot quiz.Snapshot, rng *rand.Rand) State {
	previous := state.Snapshot
	state.Snapshot = snapshot

	switch snapshot.Phase {
	case quiz.PhaseIdle:
		state.Screen = ScreenWelcome
	case quiz.PhaseComplete:
		state.Screen = ScreenScore
	default:
		state.Screen = ScreenSession
	}

	if newQuestion(previous, snapshot) {
		state.Colors = palette.Shuffle(rng, palette.Default())
	}
	return state
}

// newQuestion reports whether the snapshot presents a question the previous
// state had not seen.
func newQuestion(previous, current quiz.Snapshot) bool {
	if current.Question == nil {
		return false
	}
	if previous.Question == nil {
		return true
	}
	return previous.SeriesID != current.SeriesID ||
		previous.CurrentOrdinal != current.CurrentOrdinal
}
