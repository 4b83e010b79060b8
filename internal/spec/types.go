// Package spec defines the quiz configuration schema and its parser.
package spec

// Config is the root of a .mathquiz.yml file.
type Config struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	Game    GameConfig   `yaml:"game"`
	UI      UIConfig     `yaml:"ui"`
}

// ServerConfig points at a quiz daemon. An empty base URL means local play
// with the built-in generator.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GameConfig describes a series.
type GameConfig struct {
	Subjects  []string `yaml:"subjects"`
	Questions int      `yaml:"questions"`
	Markup    *bool    `yaml:"markup"`
}

// UIConfig controls the terminal frontend.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

// UI modes accepted in config and on the command line.
const (
	UIModeAuto  = "auto"
	UIModeTUI   = "tui"
	UIModePlain = "plain"
)
