package config

// Config holds the fglob command defaults read from the dotfile.
// Present keys override defaults, including explicit zero values; missing
// keys keep their defaults.
type Config struct {
	CLI CLIConfig `json:"cli"`

	// Options are glob options keyed by option name, e.g. {"dot": true}.
	// They are applied before command-line flags.
	Options map[string]any `json:"options"`
}

type CLIConfig struct {
	LogLevel string `json:"log_level"` // Default: "warn"
	Color    string `json:"color"`     // Default: "auto" (auto, always, never)
	Mode     string `json:"mode"`      // Default: "sync" (sync, async, stream)
	Sort     bool   `json:"sort"`      // Default: false
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CLI: CLIConfig{
			LogLevel: "warn",
			Color:    "auto",
			Mode:     "sync",
		},
		Options: map[string]any{},
	}
}
