// Package palette provides the answer-button color set and the uniform
// shuffle that reassigns colors to options on every question.
package palette

import (
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// Default returns the fixed answer-button palette in its canonical order.
func Default() []lipgloss.Color {
	return []lipgloss.Color{
		lipgloss.Color("167"),
		lipgloss.Color("71"),
		lipgloss.Color("68"),
		lipgloss.Color("179"),
	}
}

// Shuffle returns a uniformly random permutation of items without mutating
// the input. Fisher-Yates from the last index down, swap target drawn from
// [0, i].
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
