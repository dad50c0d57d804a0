// Package config loads and stores the user settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	xappdirs "github.com/chasinglogic/appdirs"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	AppName     = "trix3d"
	FileName    = "config.yaml"
	LogFileName = "trix3d.log"
)

var validate = validator.New()

// Cylinder holds the size of newly placed cylinders.
type Cylinder struct {
	Radius float64 `yaml:"radius" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// Config holds the user settings.
type Config struct {
	ConstructionPlane   string     `yaml:"construction_plane" validate:"oneof=xz xy yz"`
	ShowLabels          bool       `yaml:"show_labels"`
	LogLevel            string     `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFile             string     `yaml:"log_file"`
	WatchDebounceMS     int        `yaml:"watch_debounce_ms" validate:"gte=0,lte=10000"`
	TessellationCells   int        `yaml:"tessellation_cells" validate:"gte=8,lte=512"`
	DefaultSphereRadius float64    `yaml:"default_sphere_radius" validate:"gt=0"`
	DefaultCylinder     Cylinder   `yaml:"default_cylinder"`
	DefaultBoxSize      [3]float64 `yaml:"default_box_size" validate:"dive,gt=0"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		ConstructionPlane:   "xz",
		ShowLabels:          true,
		LogLevel:            "info",
		WatchDebounceMS:     200,
		TessellationCells:   64,
		DefaultSphereRadius: 1,
		DefaultCylinder:     Cylinder{Radius: 0.5, Height: 2},
		DefaultBoxSize:      [3]float64{1, 1, 1},
	}
}

// DefaultPath returns the settings file location in the user config directory.
func DefaultPath() string {
	return filepath.Join(xappdirs.New(AppName).UserConfig(), FileName)
}

// DefaultLogFile returns the log file location in the user log directory.
func DefaultLogFile() string {
	return filepath.Join(xappdirs.New(AppName).UserLog(), LogFileName)
}

// Load reads the settings file at path, or at DefaultPath when path is empty.
// Fields missing from the file keep their defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config: no settings file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks field ranges.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Debounce returns the file watcher debounce interval.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
