// Package config loads mindcanvas settings from defaults, an optional TOML
// file and MINDCANVAS_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	EnvConfig     = "MINDCANVAS_CONFIG"
	EnvDB         = "MINDCANVAS_DB"
	EnvLogFile    = "MINDCANVAS_LOG_FILE"
	EnvLogLevel   = "MINDCANVAS_LOG_LEVEL"
	EnvCellWidth  = "MINDCANVAS_CELL_WIDTH"
	EnvCellHeight = "MINDCANVAS_CELL_HEIGHT"
)

// Config holds mindcanvas configuration.
type Config struct {
	DBPath string       `toml:"db_path" validate:"required"`
	Log    LogConfig    `toml:"log"`
	Canvas CanvasConfig `toml:"canvas"`
}

// LogConfig controls the log file. An empty File disables logging; the
// canvas owns the terminal so logs never go to stderr.
type LogConfig struct {
	File   string `toml:"file"`
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	MapOps bool   `toml:"map_ops"`
}

// CanvasConfig is the pixel size of one terminal cell.
type CanvasConfig struct {
	CellWidth  int `toml:"cell_width" validate:"min=1,max=64"`
	CellHeight int `toml:"cell_height" validate:"min=1,max=128"`
}

// Dir returns ~/.mindcanvas.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".mindcanvas"), nil
}

// Default returns the configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		DBPath: filepath.Join(dir, "mindcanvas.db"),
		Log: LogConfig{
			File:   filepath.Join(dir, "mindcanvas.log"),
			Level:  "info",
			MapOps: true,
		},
		Canvas: CanvasConfig{CellWidth: 8, CellHeight: 16},
	}
}

// Load builds the effective configuration. A missing config file is not an
// error; a malformed one is.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	cfg := Default(dir)

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = filepath.Join(dir, "config.toml")
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Log.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCellWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCellWidth, err)
		}
		c.Canvas.CellWidth = n
	}
	if v := os.Getenv(EnvCellHeight); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCellHeight, err)
		}
		c.Canvas.CellHeight = n
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
