// Package generator produces randomized multiple-choice maths questions in
// French across four subjects. Each subject is a collection of question
// builders; a draw first picks a subject weighted by how many builders it
// carries, then one of its builders uniformly.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Subject names as exposed to clients. The question text is French but the
// subject identifiers stay English, matching the request vocabulary.
const (
	SubjectAlgebra      = "Algebra"
	SubjectArithmetic   = "Arithmetic"
	SubjectGeometry     = "Geometry"
	SubjectTrigonometry = "Trigonometry"
)

// ErrNoSubjects is returned when a request filters every subject out.
var ErrNoSubjects = errors.New("no generating subject available")

// Answer is one suggested answer. Yes/no questions carry a boolean so
// clients can localize the pair; every other answer is plain text.
type Answer struct {
	IsBool bool
	Bool   bool
	Text   string
}

func textAnswer(text string) Answer { return Answer{Text: text} }
func boolAnswer(value bool) Answer  { return Answer{IsBool: true, Bool: value} }
func boolPair() []Answer            { return []Answer{boolAnswer(true), boolAnswer(false)} }

func boolPairIndex(value bool) int {
	if value {
		return 0
	}
	return 1
}

// Request selects which subjects may produce the next question and how
// mathematical expressions are rendered.
type Request struct {
	// Subjects filters the eligible subjects; unknown names are ignored
	// and an empty or fully-unknown filter falls back to all subjects.
	Subjects []string
	// Markup renders expressions as TeX inside $...$ spans.
	Markup bool
	// ShuffleBooleanPair randomizes the order of yes/no answer pairs.
	ShuffleBooleanPair bool
}

// Result is one generated question before serialization.
type Result struct {
	Name        string
	Subject     string
	Question    string
	Suggested   []Answer
	AnswerIndex int
}

// question is a builder's raw output before subject tagging.
type question struct {
	prompt    string
	suggested []Answer
	answer    int
}

// builder constructs one question family.
type builder struct {
	name  string
	build func(rng *rand.Rand, st style) question
}

// subject groups the builders of one curriculum area.
type subject struct {
	name     string
	builders []builder
}

// Generator draws questions from a fixed subject catalogue. It is safe for
// concurrent use.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	subjects []subject
}

// New builds a Generator drawing randomness from rng. A nil rng seeds a
// private source from the current time.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		rng: rng,
		subjects: []subject{
			algebraSubject(),
			arithmeticSubject(),
			geometrySubject(),
			trigonometrySubject(),
		},
	}
}

// Subjects lists the subject names the generator can draw from.
func (g *Generator) Subjects() []string {
	names := make([]string, 0, len(g.subjects))
	for _, subject := range g.subjects {
		names = append(names, subject.name)
	}
	return names
}

// Generate draws one question according to the request.
func (g *Generator) Generate(request Request) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	eligible := g.filterSubjects(request.Subjects)
	if len(eligible) == 0 {
		return Result{}, ErrNoSubjects
	}

	chosen := g.weightedSubject(eligible)
	picked := pick(g.rng, chosen.builders)
	st := style{markup: request.Markup}
	generated := picked.build(g.rng, st)
	if request.ShuffleBooleanPair {
		generated = shuffleBooleanPair(g.rng, generated)
	}
	if generated.answer < 0 || generated.answer >= len(generated.suggested) {
		return Result{}, fmt.Errorf("builder %s produced answer index %d for %d answers",
			picked.name, generated.answer, len(generated.suggested))
	}
	return Result{
		Name:        picked.name,
		Subject:     chosen.name,
		Question:    generated.prompt,
		Suggested:   generated.suggested,
		AnswerIndex: generated.answer,
	}, nil
}

// filterSubjects keeps the requested subjects, falling back to the full
// catalogue when the filter matches nothing.
func (g *Generator) filterSubjects(requested []string) []subject {
	if len(requested) == 0 {
		return g.subjects
	}
	var eligible []subject
	for _, candidate := range g.subjects {
		if indexOf(requested, candidate.name) >= 0 {
			eligible = append(eligible, candidate)
		}
	}
	if len(eligible) == 0 {
		return g.subjects
	}
	return eligible
}

// weightedSubject picks a subject with probability proportional to its
// builder count, so no question family is over-represented.
func (g *Generator) weightedSubject(eligible []subject) subject {
	total := 0
	for _, candidate := range eligible {
		total += len(candidate.builders)
	}
	draw := g.rng.Intn(total)
	for _, candidate := range eligible {
		if draw < len(candidate.builders) {
			return candidate
		}
		draw -= len(candidate.builders)
	}
	return eligible[len(eligible)-1]
}

// shuffleBooleanPair randomizes yes/no answer order, fixing up the answer
// index. Non-boolean questions pass through untouched.
func shuffleBooleanPair(rng *rand.Rand, generated question) question {
	if len(generated.suggested) != 2 ||
		!generated.suggested[0].IsBool || !generated.suggested[1].IsBool {
		return generated
	}
	if rng.Intn(2) == 1 {
		generated.suggested[0], generated.suggested[1] = generated.suggested[1], generated.suggested[0]
		generated.answer = 1 - generated.answer
	}
	return generated
}
