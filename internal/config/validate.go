package config

import (
	"fmt"
	"net/url"
	"strings"

	"mathquiz/internal/generator"
	"mathquiz/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateServer(cfg, collector)
	validateGame(cfg, collector)
	validateUI(cfg, collector)

	return collector.result()
}

func validateServer(cfg *spec.Config, collector *issueCollector) {
	if cfg.Server.TimeoutSeconds < 0 {
		collector.add("server.timeout_seconds", "must not be negative")
	}
	if cfg.Server.BaseURL == "" {
		return
	}
	parsed, err := url.Parse(cfg.Server.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		collector.add("server.base_url", "must be an http or https URL")
	}
}

func validateGame(cfg *spec.Config, collector *issueCollector) {
	if cfg.Game.Questions < 1 {
		collector.add("game.questions", "must be at least 1")
	}
	known := generator.New(nil).Subjects()
	for i, subject := range cfg.Game.Subjects {
		found := false
		for _, candidate := range known {
			if candidate == subject {
				found = true
				break
			}
		}
		if !found {
			collector.add(fmt.Sprintf("game.subjects[%d]", i),
				fmt.Sprintf("unknown subject %q (known: %s)", subject, strings.Join(known, ", ")))
		}
	}
}

func validateUI(cfg *spec.Config, collector *issueCollector) {
	switch cfg.UI.Mode {
	case spec.UIModeAuto, spec.UIModeTUI, spec.UIModePlain:
	default:
		collector.add("ui.mode", fmt.Sprintf("must be %s, %s or %s",
			spec.UIModeAuto, spec.UIModeTUI, spec.UIModePlain))
	}
}
