package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mathquiz/internal/config"
	"mathquiz/internal/spec"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve spec path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the config for play. With no explicit path and no config
// file anywhere up the tree, play falls back to the built-in defaults; an
// explicit path must exist.
func loadConfig(specPath string) (spec.Config, error) {
	explicit := strings.TrimSpace(specPath) != ""
	resolved, err := resolveSpecPath(specPath)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return spec.Config{}, err
	}
	return config.Load(resolved)
}
