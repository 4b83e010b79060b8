package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".mathquiz.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestValidateCommandSuccess(t *testing.T) {
	path := writeConfig(t, `version: 1
server:
  base_url: "http://localhost:5000"
game:
  subjects: [Algebra, Geometry]
  questions: 5
ui:
  mode: plain
`)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--spec", path}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Config OK") {
		t.Fatalf("expected success message, got %q", out.String())
	}
}

func TestValidateCommandFailure(t *testing.T) {
	path := writeConfig(t, `version: 1
game:
  subjects: [Alchemy]
  questions: 0
`)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--spec", path}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	output := err.String()
	if !strings.Contains(output, "Validation failed") {
		t.Fatalf("expected failure header, got %q", output)
	}
	if !strings.Contains(output, "game.subjects") {
		t.Fatalf("expected subject issue, got %q", output)
	}
}

func TestValidateCommandMissingFile(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"validate", "--spec", filepath.Join(t.TempDir(), "absent.yml")}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Validation failed") {
		t.Fatalf("expected failure header, got %q", err.String())
	}
}

func TestValidateCommandRejectsExtraArgs(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"validate", "extra"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "unexpected arguments") {
		t.Fatalf("expected argument error, got %q", err.String())
	}
}
