package config

import (
	"strings"

	"mathquiz/internal/spec"
)

// Defaults applied during normalization.
const (
	DefaultQuestions      = 3
	DefaultTimeoutSeconds = 10
)

// Normalize fills the optional fields of a parsed config with their
// defaults. Validation runs after normalization, on the filled values.
func Normalize(cfg *spec.Config) {
	cfg.Server.BaseURL = strings.TrimSpace(cfg.Server.BaseURL)
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Game.Questions == 0 {
		cfg.Game.Questions = DefaultQuestions
	}
	if cfg.Game.Markup == nil {
		markup := true
		cfg.Game.Markup = &markup
	}
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = spec.UIModeAuto
	}
}
