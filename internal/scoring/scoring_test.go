package scoring

import (
	"context"
	"strings"
	"testing"

	"mathquiz/internal/quiz"
)

// TestTally checks the point formula: 100 per correct answer plus a speed
// bonus decaying by 10 per second, floored at 10.
func TestTally(t *testing.T) {
	service := New()
	records := []quiz.AnswerRecord{
		{QuestionName: "a", Correct: true, ElapsedSeconds: 0.5},   // bonus 100
		{QuestionName: "b", Correct: true, ElapsedSeconds: 3.2},   // bonus 70
		{QuestionName: "c", Correct: false, ElapsedSeconds: 1.0},  // nothing
		{QuestionName: "d", Correct: true, ElapsedSeconds: 120.0}, // bonus floored at 10
	}

	tally := service.Tally(records)
	if tally.Total != 4 || tally.Correct != 3 {
		t.Fatalf("tally counted %d/%d, want 3/4", tally.Correct, tally.Total)
	}
	want := (100 + 100) + (100 + 70) + (100 + 10)
	if tally.Points != want {
		t.Fatalf("tally.Points = %d, want %d", tally.Points, want)
	}
	if tally.Percent() != 75 {
		t.Fatalf("tally.Percent() = %d, want 75", tally.Percent())
	}
}

// TestTallyEmpty checks the zero series does not divide by zero.
func TestTallyEmpty(t *testing.T) {
	tally := New().Tally(nil)
	if tally.Percent() != 0 || tally.Points != 0 {
		t.Fatalf("empty tally = %+v", tally)
	}
}

// TestSummary checks the sentence carries the counts and percentage.
func TestSummary(t *testing.T) {
	tally := Tally{Correct: 2, Total: 3, Points: 350}
	summary := tally.Summary()
	for _, fragment := range []string{"2", "3", "66%", "350"} {
		if !strings.Contains(summary, fragment) {
			t.Fatalf("summary %q misses %q", summary, fragment)
		}
	}
}

// TestScore checks the score service adapter returns the summary sentence.
func TestScore(t *testing.T) {
	records := []quiz.AnswerRecord{{QuestionName: "a", Correct: true, ElapsedSeconds: 2}}
	value, err := New().Score(context.Background(), records)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !strings.Contains(string(value), "1 bonne réponse sur 1") {
		t.Fatalf("score value %q", value)
	}
}

// TestSpeedBonusClamps checks both clamping directions.
func TestSpeedBonusClamps(t *testing.T) {
	if got := speedBonus(-5); got != 100 {
		t.Fatalf("speedBonus(-5) = %d, want 100", got)
	}
	if got := speedBonus(9.9); got != 10 {
		t.Fatalf("speedBonus(9.9) = %d, want 10", got)
	}
	if got := speedBonus(4); got != 60 {
		t.Fatalf("speedBonus(4) = %d, want 60", got)
	}
}
