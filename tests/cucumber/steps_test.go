package cucumber

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"

	"mathquiz/internal/markup"
	"mathquiz/internal/quiz"
	"mathquiz/internal/scoring"
)

// flakySource serves one fixed question and can fail a number of times
// before succeeding.
type flakySource struct {
	mu       sync.Mutex
	question quiz.Question
	failures int
}

func (s *flakySource) Generate(context.Context, quiz.GenerateRequest) (quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return quiz.Question{}, errors.New("backend unavailable")
	}
	return s.question, nil
}

// featureState holds scenario state.
type featureState struct {
	source     *flakySource
	controller *quiz.Controller
}

// InitializeScenario wires the session steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if state.controller != nil {
			state.controller.Abandon()
		}
		return ctx, nil
	})

	ctx.Step(`^a question source that fails once$`, state.aSourceThatFailsOnce)
	ctx.Step(`^a series of (\d+) questions about "([^"]*)"$`, state.aSeries)
	ctx.Step(`^I answer every question correctly$`, state.iAnswerEveryQuestionCorrectly)
	ctx.Step(`^I answer the first question incorrectly$`, state.iAnswerIncorrectly)
	ctx.Step(`^I acknowledge the feedback$`, state.iAcknowledgeFeedback)
	ctx.Step(`^I retry$`, state.iRetry)
	ctx.Step(`^I abandon the series$`, state.iAbandon)
	ctx.Step(`^the session completes$`, state.theSessionCompletes)
	ctx.Step(`^the session is idle$`, state.theSessionIsIdle)
	ctx.Step(`^the session reports a fetch error$`, state.theSessionReportsAFetchError)
	ctx.Step(`^the correction names "([^"]*)"$`, state.theCorrectionNames)
	ctx.Step(`^answering again is rejected$`, state.answeringAgainIsRejected)
	ctx.Step(`^the score reads "([^"]*)"$`, state.theScoreReads)
}

func (s *featureState) reset() {
	s.source = &flakySource{
		question: quiz.Question{
			Name:         "q_pair",
			Subject:      "Arithmetic",
			Prompt:       "Le nombre $36$ est-il un carré parfait ?",
			Options:      []string{"Oui", "Non"},
			CorrectIndex: 0,
		},
	}
	s.controller = nil
}

func (s *featureState) aSourceThatFailsOnce() error {
	s.source.failures = 1
	return nil
}

func (s *featureState) aSeries(count string, subject string) error {
	target, err := strconv.Atoi(count)
	if err != nil {
		return fmt.Errorf("bad question count %q: %w", count, err)
	}
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.controller = quiz.NewController(quiz.Config{
		Source: s.source,
		Scorer: scoring.New(),
		Now:    func() time.Time { return start },
	})
	return s.controller.Launch([]string{subject}, target)
}

func (s *featureState) iAnswerEveryQuestionCorrectly() error {
	for {
		snapshot, err := s.waitSettled()
		if err != nil {
			return err
		}
		if snapshot.Phase == quiz.PhaseComplete {
			return nil
		}
		if snapshot.Phase != quiz.PhasePresenting || snapshot.Question == nil {
			return fmt.Errorf("expected a question, got phase %q", snapshot.Phase)
		}
		if err := s.controller.SubmitAnswer(s.source.question.CorrectIndex); err != nil {
			return err
		}
	}
}

func (s *featureState) iAnswerIncorrectly() error {
	snapshot, err := s.waitPhase(quiz.PhasePresenting)
	if err != nil {
		return err
	}
	wrong := (s.source.question.CorrectIndex + 1) % len(snapshot.Question.Options)
	return s.controller.SubmitAnswer(wrong)
}

func (s *featureState) iAcknowledgeFeedback() error {
	return s.controller.AcknowledgeFeedback()
}

func (s *featureState) iRetry() error {
	return s.controller.Retry()
}

func (s *featureState) iAbandon() error {
	s.controller.Abandon()
	return nil
}

func (s *featureState) theSessionCompletes() error {
	_, err := s.waitPhase(quiz.PhaseComplete)
	return err
}

func (s *featureState) theSessionIsIdle() error {
	_, err := s.waitPhase(quiz.PhaseIdle)
	return err
}

func (s *featureState) theSessionReportsAFetchError() error {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snapshot := s.controller.Snapshot()
		if snapshot.Err != nil {
			if !errors.Is(snapshot.Err, quiz.ErrFetchFailed) {
				return fmt.Errorf("expected a fetch error, got %v", snapshot.Err)
			}
			return nil
		}
		time.Sleep(2 * time.Millisecond)
	}
	return errors.New("no fetch error reported")
}

func (s *featureState) theCorrectionNames(expected string) error {
	snapshot, err := s.waitPhase(quiz.PhaseFeedback)
	if err != nil {
		return err
	}
	if snapshot.Feedback == nil {
		return errors.New("no feedback in snapshot")
	}
	got := markup.Flatten(snapshot.Feedback.CorrectText, nil)
	if got != expected {
		return fmt.Errorf("correction %q, want %q", got, expected)
	}
	return nil
}

func (s *featureState) answeringAgainIsRejected() error {
	err := s.controller.SubmitAnswer(0)
	if !errors.Is(err, quiz.ErrInvalidTransition) {
		return fmt.Errorf("expected an invalid transition, got %v", err)
	}
	return nil
}

func (s *featureState) theScoreReads(expected string) error {
	snapshot, err := s.waitPhase(quiz.PhaseComplete)
	if err != nil {
		return err
	}
	if !strings.Contains(string(snapshot.Score), expected) {
		return fmt.Errorf("score %q does not contain %q", snapshot.Score, expected)
	}
	return nil
}

// waitPhase polls until the session reaches a phase.
func (s *featureState) waitPhase(phase quiz.Phase) (quiz.Snapshot, error) {
	deadline := time.Now().Add(2 * time.Second)
	var snapshot quiz.Snapshot
	for time.Now().Before(deadline) {
		snapshot = s.controller.Snapshot()
		if snapshot.Phase == phase {
			return snapshot, nil
		}
		time.Sleep(2 * time.Millisecond)
	}
	return snapshot, fmt.Errorf("phase %q not reached, still %q", phase, snapshot.Phase)
}

// waitSettled polls until the session leaves the fetching and scoring phases.
func (s *featureState) waitSettled() (quiz.Snapshot, error) {
	deadline := time.Now().Add(2 * time.Second)
	var snapshot quiz.Snapshot
	for time.Now().Before(deadline) {
		snapshot = s.controller.Snapshot()
		switch snapshot.Phase {
		case quiz.PhaseFetchingQuestion, quiz.PhaseScoring:
			if snapshot.Err != nil {
				return snapshot, fmt.Errorf("session error: %v", snapshot.Err)
			}
			time.Sleep(2 * time.Millisecond)
		default:
			return snapshot, nil
		}
	}
	return snapshot, errors.New("session did not settle")
}
