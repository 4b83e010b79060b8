package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"mathquiz/internal/quiz"
)

// scriptedSource serves a fixed question.
type scriptedSource struct {
	question quiz.Question
}

func (s scriptedSource) Generate(context.Context, quiz.GenerateRequest) (quiz.Question, error) {
	return s.question, nil
}

// fixedScorer returns a constant score string.
type fixedScorer struct {
	score string
}

func (s fixedScorer) Score(context.Context, []quiz.AnswerRecord) (quiz.ScoreValue, error) {
	return quiz.ScoreValue(s.score), nil
}

func TestPlainRunnerPlaysASeries(t *testing.T) {
	question := quiz.Question{
		Name:         "q_pair",
		Subject:      "Arithmetic",
		Prompt:       "Le nombre $36$ est-il un carré parfait ?",
		Options:      []string{"Oui", "Non"},
		CorrectIndex: 0,
	}
	// First answer wrong (2), acknowledge, then right (1).
	input := strings.NewReader("2\n\n1\n")
	var out bytes.Buffer
	runner := newPlainRunner(input, &out)
	controller := quiz.NewController(quiz.Config{
		Source:   scriptedSource{question: question},
		Scorer:   fixedScorer{score: "Votre score est de 1 bonne réponse sur 2"},
		Observer: runner,
	})

	code := runner.Run(controller, []string{"Arithmetic"}, 2)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d\noutput:\n%s", ExitOK, code, out.String())
	}
	output := out.String()
	for _, want := range []string{
		"Question 1/2",
		"Le nombre 36 est-il un carré parfait ?",
		"Mauvaise réponse. La bonne réponse était: Oui",
		"Question 2/2",
		"Votre score est de 1 bonne réponse sur 2",
		"Juste",
		"Faux",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPlainRunnerExitsWhenInputEnds(t *testing.T) {
	question := quiz.Question{
		Name:         "q_pair",
		Subject:      "Arithmetic",
		Prompt:       "Oui ou non ?",
		Options:      []string{"Oui", "Non"},
		CorrectIndex: 0,
	}
	var out bytes.Buffer
	runner := newPlainRunner(strings.NewReader(""), &out)
	controller := quiz.NewController(quiz.Config{
		Source:   scriptedSource{question: question},
		Scorer:   fixedScorer{score: "score"},
		Observer: runner,
	})

	if code := runner.Run(controller, []string{"Arithmetic"}, 1); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
}

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		line  string
		count int
		index int
		ok    bool
	}{
		{"1", 4, 0, true},
		{" 3 ", 4, 2, true},
		{"d", 4, 3, true},
		{"B", 4, 1, true},
		{"5", 4, 0, false},
		{"c", 2, 0, false},
		{"", 4, 0, false},
		{"12", 4, 0, false},
		{"x", 4, 0, false},
	}
	for _, tc := range cases {
		index, ok := parseAnswer(tc.line, tc.count)
		if ok != tc.ok || (ok && index != tc.index) {
			t.Fatalf("parseAnswer(%q, %d) = (%d, %v), want (%d, %v)",
				tc.line, tc.count, index, ok, tc.index, tc.ok)
		}
	}
}
