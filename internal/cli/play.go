package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"mathquiz/internal/client"
	"mathquiz/internal/generator"
	"mathquiz/internal/quiz"
	"mathquiz/internal/scoring"
	"mathquiz/internal/spec"
	"mathquiz/internal/ui/play"
)

// playInput is a test seam for the plain-mode answer stream.
var playInput io.Reader

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .mathquiz.yml)")
		server := flags.String("server", "", "Quiz daemon base URL (default: play against the built-in generator)")
		subjectsFlag := flags.String("subjects", "", "Comma-separated subject filter")
		questions := flags.Int("questions", 0, "Number of questions in the series")
		uiMode := flags.String("ui", "", "UI mode: auto, tui or plain")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *questions < 0 {
			fmt.Fprintln(stderr, "Play failed: questions must be at least 1")
			return ExitUsage
		}

		cfg, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed:\n%v\n", err)
			return ExitError
		}
		applyPlayOverrides(&cfg, *server, *subjectsFlag, *questions, *uiMode, *noColor)
		if cfg.Game.Questions < 1 {
			fmt.Fprintln(stderr, "Play failed: questions must be at least 1")
			return ExitUsage
		}

		decision, err := resolveUIMode(cfg.UI.Mode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		source, scorer := buildServices(cfg)
		proxy := &observerProxy{}
		markup := cfg.Game.Markup == nil || *cfg.Game.Markup
		controller := quiz.NewController(quiz.Config{
			Source:   source,
			Scorer:   scorer,
			Observer: proxy,
			Markup:   markup,
		})

		if decision.useTUI {
			ui := play.Start(stdout, controller, play.Options{
				Subjects:  generator.New(nil).Subjects(),
				Selected:  selectedSubjects(cfg),
				Questions: cfg.Game.Questions,
				NoColor:   cfg.UI.NoColor,
			})
			proxy.set(ui)
			ui.Wait()
			controller.Abandon()
			return ExitOK
		}

		in := playInput
		if in == nil {
			in = os.Stdin
		}
		runner := newPlainRunner(in, stdout)
		proxy.set(runner)
		subjects := cfg.Game.Subjects
		if len(subjects) == 0 {
			subjects = generator.New(nil).Subjects()
		}
		return runner.Run(controller, subjects, cfg.Game.Questions)
	}
}

// applyPlayOverrides folds command-line flags over the loaded config.
func applyPlayOverrides(cfg *spec.Config, server, subjects string, questions int, uiMode string, noColor bool) {
	if strings.TrimSpace(server) != "" {
		cfg.Server.BaseURL = strings.TrimSpace(server)
	}
	if strings.TrimSpace(subjects) != "" {
		var parsed []string
		for _, subject := range strings.Split(subjects, ",") {
			if trimmed := strings.TrimSpace(subject); trimmed != "" {
				parsed = append(parsed, trimmed)
			}
		}
		cfg.Game.Subjects = parsed
	}
	if questions > 0 {
		cfg.Game.Questions = questions
	}
	if strings.TrimSpace(uiMode) != "" {
		cfg.UI.Mode = strings.TrimSpace(uiMode)
	}
	if noColor {
		cfg.UI.NoColor = true
	}
}

// buildServices returns the question source and score service: the HTTP
// client when a server is configured, the in-process generator otherwise.
func buildServices(cfg spec.Config) (quiz.QuestionSource, quiz.ScoreService) {
	if cfg.Server.BaseURL != "" {
		timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		c := client.NewWithTimeout(cfg.Server.BaseURL, timeout)
		return c, c
	}
	return generator.Source{Generator: generator.New(nil)}, scoring.New()
}

// selectedSubjects returns the configured subject filter, or nil when every
// subject is in play.
func selectedSubjects(cfg spec.Config) []string {
	if len(cfg.Game.Subjects) == 0 {
		return nil
	}
	return cfg.Game.Subjects
}

// observerProxy forwards snapshots to an observer installed after the
// controller is built. Snapshots arriving before that are dropped; the UI
// starts from the idle screen anyway.
type observerProxy struct {
	mu     sync.Mutex
	target quiz.Observer
}

func (p *observerProxy) set(target quiz.Observer) {
	p.mu.Lock()
	p.target = target
	p.mu.Unlock()
}

func (p *observerProxy) OnSessionUpdate(snapshot quiz.Snapshot) {
	p.mu.Lock()
	target := p.target
	p.mu.Unlock()
	if target != nil {
		target.OnSessionUpdate(snapshot)
	}
}
