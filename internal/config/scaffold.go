package config

import (
	"fmt"
	"os"
)

const defaultConfig = `version: 1

# Leave base_url empty to play against the built-in generator.
server:
  base_url: ""
  timeout_seconds: 10

game:
  subjects: [Algebra, Arithmetic, Geometry, Trigonometry]
  questions: 3
  markup: true

ui:
  mode: auto
  no_color: false
`

// Scaffold writes a starter config file, refusing to overwrite one.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
