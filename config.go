package termselect

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the config file name inside the configuration directory.
const ConfigFileName = "config.toml"

// Config holds settings read from the config file. Zero values mean "use the default".
type Config struct {
	// Output is the report path.
	Output string `toml:"output"`
	// PNG also writes a screenshot next to the report.
	PNG bool `toml:"png"`
	// Print echoes the highlighted report on the console.
	Print bool `toml:"print"`
	// Rows and Cols size the capture for replayed and spawned output.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
	// MarkdownStyle is the glamour style for the markdown command.
	MarkdownStyle string `toml:"markdown_style"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfigPath returns <home>/.config/termselect/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadConfig reads the config file at path. A missing file yields an empty Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ScreenshotPath returns the PNG path that goes with a report path.
func ScreenshotPath(reportPath string) string {
	return strings.TrimSuffix(reportPath, filepath.Ext(reportPath)) + ".png"
}

// Level parses LogLevel. Unknown or empty values mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
