// Package config provides configuration types and defaults for vedit.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
)

// Config holds all configuration options for vedit.
type Config struct {
	Editor EditorConfig `mapstructure:"editor"`
	UI     UIConfig     `mapstructure:"ui"`
	Watch  bool         `mapstructure:"watch"` // Warn when the open file changes on disk
	Log    LogConfig    `mapstructure:"log"`
}

// EditorConfig holds editing behaviour options.
type EditorConfig struct {
	TabWidth   int    `mapstructure:"tab_width"`   // Spaces inserted for a tab (1-16)
	KillKey    string `mapstructure:"kill_key"`    // Key that exits from any mode, e.g. "ctrl+q"
	UndoLevels int    `mapstructure:"undo_levels"` // Undo depth, 0 for unlimited
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	Highlight     bool   `mapstructure:"highlight"` // Syntax highlighting by file extension
	Theme         string `mapstructure:"theme"`     // chroma style name
}

// LogConfig controls the debug log.
type LogConfig struct {
	Path  string `mapstructure:"path"`  // Empty disables logging unless --debug is set
	Level string `mapstructure:"level"` // debug, info, warn or error
}

const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:   4,
			KillKey:    "ctrl+q",
			UndoLevels: 1000,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			Highlight:     true,
			Theme:         "monokai",
		},
		Watch: true,
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// SetDefaults registers every default with v so unset keys fall back to
// Defaults after Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.kill_key", d.Editor.KillKey)
	v.SetDefault("editor.undo_levels", d.Editor.UndoLevels)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.highlight", d.UI.Highlight)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(c Config) error {
	if c.Editor.TabWidth < MinTabWidth || c.Editor.TabWidth > MaxTabWidth {
		return fmt.Errorf("editor.tab_width must be between %d and %d, got %d",
			MinTabWidth, MaxTabWidth, c.Editor.TabWidth)
	}
	if c.Editor.UndoLevels < 0 {
		return fmt.Errorf("editor.undo_levels must not be negative, got %d", c.Editor.UndoLevels)
	}
	if c.Editor.KillKey != "" {
		if _, err := keys.Parse(c.Editor.KillKey); err != nil {
			return fmt.Errorf("editor.kill_key: %w", err)
		}
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

// KillKey returns the parsed kill key, falling back to the default.
func (c Config) KillKey() keys.Key {
	if k, err := keys.Parse(c.Editor.KillKey); err == nil {
		return k
	}
	return keys.CtrlKey("q")
}

// DefaultConfigPath returns ~/.config/vedit/config.yaml, or an empty
// string if the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vedit", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vedit configuration

editor:
  tab_width: 4        # Spaces inserted for <Tab> (1-16)
  kill_key: ctrl+q    # Exits immediately from any mode, discarding changes
  undo_levels: 1000   # Undo depth, 0 keeps every change

# UI settings
ui:
  show_status_bar: true   # Show mode, file and cursor position at the bottom
  highlight: true         # Syntax highlighting chosen by file extension
  theme: monokai          # Any chroma style, e.g. dracula, github, nord

# Warn when the open file is modified by another program
watch: true

# Debug log (also enabled by --debug or VEDIT_DEBUG=1)
log:
  # path: /tmp/vedit.log
  level: debug   # debug, info, warn or error
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
