package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"mathquiz/internal/spec"
)

// uiModeDecision captures whether to run the full-screen UI.
type uiModeDecision struct {
	useTUI  bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode determines whether to run the Bubble Tea UI or the plain
// line-oriented fallback.
func resolveUIMode(mode string, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = spec.UIModeAuto
	}
	switch normalized {
	case spec.UIModeAuto:
		return uiModeDecision{useTUI: isTerminal(stdout)}, nil
	case spec.UIModeTUI:
		if isTerminal(stdout) {
			return uiModeDecision{useTUI: true}, nil
		}
		return uiModeDecision{
			useTUI:  false,
			warning: "TUI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	case spec.UIModePlain:
		return uiModeDecision{useTUI: false}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|tui|plain)", mode)
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
