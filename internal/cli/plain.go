package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mathquiz/internal/markup"
	"mathquiz/internal/quiz"
)

// plainRunner plays a series over plain line-oriented input and output, for
// pipes and terminals without TTY support. It launches immediately with the
// configured settings; there is no interactive welcome screen.
type plainRunner struct {
	events chan quiz.Snapshot
	in     *bufio.Scanner
	out    io.Writer
}

func newPlainRunner(in io.Reader, out io.Writer) *plainRunner {
	return &plainRunner{
		events: make(chan quiz.Snapshot, 64),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// OnSessionUpdate implements quiz.Observer.
func (p *plainRunner) OnSessionUpdate(snapshot quiz.Snapshot) {
	select {
	case p.events <- snapshot:
	default:
	}
}

// Run drives one series to completion and returns an exit code.
func (p *plainRunner) Run(controller *quiz.Controller, subjects []string, questions int) int {
	if err := controller.Launch(subjects, questions); err != nil {
		fmt.Fprintf(p.out, "Impossible de lancer la série: %v\n", err)
		return ExitError
	}

	for snapshot := range p.events {
		switch {
		case snapshot.Err != nil:
			fmt.Fprintf(p.out, "Erreur: %v\n", snapshot.Err)
			if !p.promptRetry(controller) {
				controller.Abandon()
				return ExitError
			}
		case snapshot.Phase == quiz.PhasePresenting:
			if !p.askQuestion(controller, snapshot) {
				controller.Abandon()
				return ExitError
			}
		case snapshot.Phase == quiz.PhaseFeedback:
			if !p.showFeedback(controller, snapshot) {
				controller.Abandon()
				return ExitError
			}
		case snapshot.Phase == quiz.PhaseComplete:
			p.printScore(snapshot)
			return ExitOK
		}
	}
	return ExitError
}

// askQuestion prints the question and reads an answer. It reports false when
// input runs out.
func (p *plainRunner) askQuestion(controller *quiz.Controller, snapshot quiz.Snapshot) bool {
	question := snapshot.Question
	if question == nil {
		return true
	}
	fmt.Fprintf(p.out, "\nQuestion %d/%d\n", snapshot.CurrentOrdinal, snapshot.TargetCount)
	fmt.Fprintln(p.out, flattenPlain(question.Prompt))
	for i, option := range question.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, flattenPlain(option))
	}

	for {
		fmt.Fprintf(p.out, "Réponse [1-%d]: ", len(question.Options))
		line, ok := p.readLine()
		if !ok {
			return false
		}
		index, valid := parseAnswer(line, len(question.Options))
		if !valid {
			fmt.Fprintln(p.out, "Réponse invalide.")
			continue
		}
		if err := controller.SubmitAnswer(index); err != nil {
			fmt.Fprintf(p.out, "Erreur: %v\n", err)
		}
		return true
	}
}

// showFeedback prints the correction and waits for a keypress. It reports
// false when input runs out.
func (p *plainRunner) showFeedback(controller *quiz.Controller, snapshot quiz.Snapshot) bool {
	if snapshot.Feedback != nil {
		fmt.Fprintf(p.out, "Mauvaise réponse. La bonne réponse était: %s\n",
			flattenPlain(snapshot.Feedback.CorrectText))
	}
	fmt.Fprint(p.out, "Appuyez sur entrée pour continuer... ")
	if _, ok := p.readLine(); !ok {
		return false
	}
	if err := controller.AcknowledgeFeedback(); err != nil {
		fmt.Fprintf(p.out, "Erreur: %v\n", err)
	}
	return true
}

// promptRetry asks whether to retry a failed fetch. It reports false when
// the user declines or input runs out.
func (p *plainRunner) promptRetry(controller *quiz.Controller) bool {
	for {
		fmt.Fprint(p.out, "Réessayer ? [r/q]: ")
		line, ok := p.readLine()
		if !ok {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "r", "":
			if err := controller.Retry(); err != nil {
				fmt.Fprintf(p.out, "Erreur: %v\n", err)
				return false
			}
			return true
		case "q":
			return false
		}
	}
}

// printScore prints the final score and the answer recap.
func (p *plainRunner) printScore(snapshot quiz.Snapshot) {
	fmt.Fprintf(p.out, "\n%s\n", string(snapshot.Score))
	for i, record := range snapshot.Records {
		result := "Faux"
		if record.Correct {
			result = "Juste"
		}
		fmt.Fprintf(p.out, "  %d. %s (%s) %s %s\n",
			i+1, record.QuestionName, record.Subject, formatSeconds(record.ElapsedSeconds), result)
	}
}

func (p *plainRunner) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}

// parseAnswer maps "1".."9" or "a".."d" onto an option index.
func parseAnswer(line string, optionCount int) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	if len(trimmed) != 1 {
		return 0, false
	}
	var index int
	switch c := trimmed[0]; {
	case c >= '1' && c <= '9':
		index = int(c - '1')
	case c >= 'a' && c <= 'd':
		index = int(c - 'a')
	default:
		return 0, false
	}
	if index >= optionCount {
		return 0, false
	}
	return index, true
}

// flattenPlain renders segments with math spans verbatim.
func flattenPlain(segments []markup.Segment) string {
	return markup.Flatten(segments, nil)
}

// formatSeconds formats an answer time for the recap.
func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
