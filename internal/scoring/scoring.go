// Package scoring turns a finished series of answer records into a final
// score. Each correct answer earns a fixed amount plus a speed bonus that
// decays for every second spent on the question.
package scoring

import (
	"context"
	"fmt"

	"mathquiz/internal/quiz"
)

const (
	correctPoints = 100
	maxSpeedBonus = 100
	minSpeedBonus = 10
	bonusStep     = 10
)

// Tally is the aggregate of one series.
type Tally struct {
	Correct int
	Total   int
	Points  int
}

// Percent is the share of correct answers, truncated to an integer.
func (t Tally) Percent() int {
	if t.Total == 0 {
		return 0
	}
	return t.Correct * 100 / t.Total
}

// Summary renders the tally as the sentence shown to the player.
func (t Tally) Summary() string {
	return fmt.Sprintf("Votre score est de %d bonne réponse sur %d, soit %d%% de réussite (%d points)",
		t.Correct, t.Total, t.Percent(), t.Points)
}

// Service computes scores. The zero value is ready to use.
type Service struct{}

// New returns a scoring service.
func New() *Service {
	return &Service{}
}

// Tally aggregates the records of one series.
func (s *Service) Tally(records []quiz.AnswerRecord) Tally {
	var tally Tally
	for _, record := range records {
		tally.Total++
		if !record.Correct {
			continue
		}
		tally.Correct++
		tally.Points += correctPoints + speedBonus(record.ElapsedSeconds)
	}
	return tally
}

// Score implements the session controller's score service directly, for
// play without a server.
func (s *Service) Score(_ context.Context, records []quiz.AnswerRecord) (quiz.ScoreValue, error) {
	return quiz.ScoreValue(s.Tally(records).Summary()), nil
}

// speedBonus decays from the maximum by bonusStep per elapsed second and
// never drops below the minimum.
func speedBonus(elapsedSeconds float64) int {
	bonus := maxSpeedBonus - int(elapsedSeconds)*bonusStep
	if bonus > maxSpeedBonus {
		bonus = maxSpeedBonus
	}
	if bonus < minSpeedBonus {
		bonus = minSpeedBonus
	}
	return bonus
}
