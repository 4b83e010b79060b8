// Package quiz implements the session controller for a timed multiple-choice
// quiz: the welcome/question-loop/feedback/scoring state machine, per-question
// timing, answer-record aggregation, and the orchestration of question and
// score fetches against remote services.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mathquiz/internal/markup"
)

// Phase identifies the controller's state machine position.
type Phase string

const (
	// PhaseIdle marks the pre-launch state.
	PhaseIdle Phase = "idle"
	// PhaseFetchingQuestion marks an outstanding question fetch.
	PhaseFetchingQuestion Phase = "fetching_question"
	// PhasePresenting marks a visible question with the timer running.
	PhasePresenting Phase = "presenting"
	// PhaseFeedback marks the wrong-answer pause awaiting acknowledgement.
	PhaseFeedback Phase = "feedback"
	// PhaseScoring marks an outstanding score fetch.
	PhaseScoring Phase = "scoring"
	// PhaseComplete marks a finished series with the score available.
	PhaseComplete Phase = "complete"
)

// Config wires dependencies for a Controller.
type Config struct {
	Source      QuestionSource
	Scorer      ScoreService
	Observer    Observer
	Markup      bool
	Now         func() time.Time
	NewSeriesID func() string
}

// Controller owns the session state machine. All transitions are synchronous
// and atomic with respect to each other; the only suspension points are the
// question and score fetches, whose outcomes re-enter the machine tagged with
// the series and ordinal they belong to so that stale responses are
// discarded.
type Controller struct {
	mu          sync.Mutex
	source      QuestionSource
	scorer      ScoreService
	observer    Observer
	markup      bool
	now         func() time.Time
	newSeriesID func() string
	session     *session
}

// session is one series' state, discarded wholesale on relaunch or abandon.
type session struct {
	id            string
	subjects      []string
	target        int
	ordinal       int
	phase         Phase
	question      *Question
	questionStart time.Time
	records       *RecordStore
	feedback      *Feedback
	score         ScoreValue
	err           error
	ctx           context.Context
	cancel        context.CancelFunc
}

// fetchTag identifies which series and ordinal an outcome belongs to.
type fetchTag struct {
	series  string
	ordinal int
}

// NewController constructs a controller. Source and Scorer are required; Now
// and NewSeriesID default to the wall clock and random UUIDs.
func NewController(cfg Config) *Controller {
	controller := &Controller{
		source:      cfg.Source,
		scorer:      cfg.Scorer,
		observer:    cfg.Observer,
		markup:      cfg.Markup,
		now:         cfg.Now,
		newSeriesID: cfg.NewSeriesID,
	}
	if controller.now == nil {
		controller.now = time.Now
	}
	if controller.newSeriesID == nil {
		controller.newSeriesID = uuid.NewString
	}
	return controller
}

// Launch starts a fresh series, discarding any prior session and its
// in-flight fetches. It requires a non-empty subject set and a target of at
// least one question.
func (c *Controller) Launch(subjects []string, targetCount int) error {
	if len(subjects) == 0 {
		return errors.New("launch requires at least one subject")
	}
	if targetCount < 1 {
		return fmt.Errorf("launch requires a target of at least 1 question, got %d", targetCount)
	}
	if c.source == nil || c.scorer == nil {
		return errors.New("controller is missing a question source or score service")
	}

	c.mu.Lock()
	if c.session != nil {
		c.session.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.session = &session{
		id:       c.newSeriesID(),
		subjects: append([]string(nil), subjects...),
		target:   targetCount,
		ordinal:  1,
		phase:    PhaseFetchingQuestion,
		records:  NewRecordStore(),
		ctx:      ctx,
		cancel:   cancel,
	}
	c.startFetchLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
	return nil
}

// SubmitAnswer records the user's selection for the current question. It is
// rejected outside the Presenting phase, so rapid repeated input cannot
// double-count.
func (c *Controller) SubmitAnswer(index int) error {
	c.mu.Lock()
	s := c.session
	if s == nil || s.phase != PhasePresenting || s.question == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit answer requires the presenting phase", ErrInvalidTransition)
	}
	question := *s.question
	if index < 0 || index >= len(question.Options) {
		c.mu.Unlock()
		return fmt.Errorf("selected option %d out of range [0,%d)", index, len(question.Options))
	}

	record := AnswerRecord{
		QuestionName:   question.Name,
		Subject:        question.Subject,
		ElapsedSeconds: c.now().Sub(s.questionStart).Seconds(),
		Correct:        index == question.CorrectIndex,
	}
	if err := s.records.Put(s.ordinal, record); err != nil {
		c.mu.Unlock()
		return err
	}

	if !record.Correct {
		s.phase = PhaseFeedback
		s.feedback = &Feedback{
			CorrectIndex: question.CorrectIndex,
			CorrectText:  markup.Tokenize(question.Options[question.CorrectIndex]),
		}
	} else {
		c.advanceLocked(s)
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
	return nil
}

// AcknowledgeFeedback dismisses the wrong-answer feedback and advances the
// series. It is rejected outside the Feedback phase.
func (c *Controller) AcknowledgeFeedback() error {
	c.mu.Lock()
	s := c.session
	if s == nil || s.phase != PhaseFeedback {
		c.mu.Unlock()
		return fmt.Errorf("%w: acknowledge requires the feedback phase", ErrInvalidTransition)
	}
	c.advanceLocked(s)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
	return nil
}

// Retry re-enters the failed fetch or score phase after an error. It is the
// manual retry affordance; the controller never retries on its own.
func (c *Controller) Retry() error {
	c.mu.Lock()
	s := c.session
	switch {
	case s != nil && s.phase == PhaseFetchingQuestion && s.err != nil:
		s.err = nil
		c.startFetchLocked()
	case s != nil && s.phase == PhaseScoring && s.err != nil:
		s.err = nil
		c.startScoreLocked()
	default:
		c.mu.Unlock()
		return fmt.Errorf("%w: nothing to retry", ErrInvalidTransition)
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
	return nil
}

// Abandon discards the session from any phase and cancels in-flight fetches.
func (c *Controller) Abandon() {
	c.mu.Lock()
	if c.session != nil {
		c.session.cancel()
		c.session = nil
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// Snapshot returns the current read-only session view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// advanceLocked moves past an answered question: to scoring when the series
// is exhausted, otherwise to the next question fetch.
func (c *Controller) advanceLocked(s *session) {
	s.question = nil
	s.feedback = nil
	if s.ordinal == s.target {
		s.phase = PhaseScoring
		c.startScoreLocked()
		return
	}
	s.ordinal++
	s.phase = PhaseFetchingQuestion
	c.startFetchLocked()
}

// startFetchLocked launches the question fetch for the current ordinal.
func (c *Controller) startFetchLocked() {
	s := c.session
	tag := fetchTag{series: s.id, ordinal: s.ordinal}
	ctx := s.ctx
	req := GenerateRequest{
		Subjects:    append([]string(nil), s.subjects...),
		WantsMarkup: c.markup,
	}
	go func() {
		question, err := c.source.Generate(ctx, req)
		c.completeFetch(tag, question, err)
	}()
}

// startScoreLocked launches the score fetch for the finished series.
func (c *Controller) startScoreLocked() {
	s := c.session
	tag := fetchTag{series: s.id}
	ctx := s.ctx
	records := s.records.All()
	go func() {
		score, err := c.scorer.Score(ctx, records)
		c.completeScore(tag, score, err)
	}()
}

// completeFetch applies a question fetch outcome, discarding stale responses
// from an abandoned or relaunched series.
func (c *Controller) completeFetch(tag fetchTag, question Question, err error) {
	c.mu.Lock()
	s := c.session
	if s == nil || s.id != tag.series || s.phase != PhaseFetchingQuestion || s.ordinal != tag.ordinal {
		c.mu.Unlock()
		return
	}
	if err == nil {
		err = question.Validate()
	}
	if err != nil {
		s.err = fmt.Errorf("%w: %v", ErrFetchFailed, err)
	} else {
		s.question = &question
		s.questionStart = c.now()
		s.phase = PhasePresenting
		s.err = nil
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// completeScore applies a score fetch outcome, discarding stale responses.
func (c *Controller) completeScore(tag fetchTag, score ScoreValue, err error) {
	c.mu.Lock()
	s := c.session
	if s == nil || s.id != tag.series || s.phase != PhaseScoring {
		c.mu.Unlock()
		return
	}
	if err != nil {
		s.err = fmt.Errorf("%w: %v", ErrScoreFetchFailed, err)
	} else {
		s.score = score
		s.phase = PhaseComplete
		s.err = nil
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// snapshotLocked copies the session into a read-only view.
func (c *Controller) snapshotLocked() Snapshot {
	s := c.session
	if s == nil {
		return Snapshot{Phase: PhaseIdle}
	}
	snapshot := Snapshot{
		Phase:          s.phase,
		SeriesID:       s.id,
		Subjects:       append([]string(nil), s.subjects...),
		TargetCount:    s.target,
		CurrentOrdinal: s.ordinal,
		TimerRunning:   s.phase == PhasePresenting,
		Score:          s.score,
		Err:            s.err,
		Records:        s.records.All(),
	}
	if s.question != nil {
		presented := &PresentedQuestion{
			Name:    s.question.Name,
			Subject: s.question.Subject,
			Prompt:  markup.Tokenize(s.question.Prompt),
		}
		for _, option := range s.question.Options {
			presented.Options = append(presented.Options, markup.Tokenize(option))
		}
		snapshot.Question = presented
	}
	if s.feedback != nil {
		feedback := *s.feedback
		snapshot.Feedback = &feedback
	}
	return snapshot
}

// publish delivers a snapshot to the observer, if one is attached.
func (c *Controller) publish(snapshot Snapshot) {
	if c.observer == nil {
		return
	}
	c.observer.OnSessionUpdate(snapshot)
}
