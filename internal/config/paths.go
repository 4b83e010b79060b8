package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the per-project config file, looked up from the
// working directory upward.
const ConfigFileName = ".mathquiz.yml"

// ConfigPath returns the config file path under a directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// FindConfigPath searches upward from a directory for a config file. It
// returns os.ErrNotExist wrapped when no file is found, so callers can fall
// back to defaults.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	dir = abs
	origin := dir

	for {
		configPath := ConfigPath(dir)
		info, err := os.Stat(configPath)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %q is a directory", configPath)
			}
			return configPath, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat config path %q: %w", configPath, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or parent directories: %w",
				ConfigFileName, origin, os.ErrNotExist)
		}
		dir = parent
	}
}
