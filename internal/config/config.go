// Package config loads geopan settings from struct defaults, an optional
// YAML file and GEOPAN_* environment variables, in that order of precedence
// (later wins), and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"geopan/internal/render"
)

// PathEnvVar names an explicit config file.
const PathEnvVar = "GEOPAN_CONFIG"

// DefaultPaths are tried in order when PathEnvVar is unset.
var DefaultPaths = []string{"geopan.yaml", "geopan.yml"}

type Config struct {
	Dataset DatasetConfig `koanf:"dataset"`
	View    ViewConfig    `koanf:"view"`
	Logging LoggingConfig `koanf:"logging"`
}

type DatasetConfig struct {
	// Path is a data file or a directory of them.
	Path string `koanf:"path" validate:"required"`
	// Region is the collection shown first.
	Region string `koanf:"region"`
	Watch  bool   `koanf:"watch"`
}

type ViewConfig struct {
	// Width and Height size snapshot rasters.
	Width      int               `koanf:"width" validate:"gt=0,lte=16384"`
	Height     int               `koanf:"height" validate:"gt=0,lte=16384"`
	Background string            `koanf:"background" validate:"required"`
	Font       render.FontOption `koanf:"font"`
	// TerminalFontSize is the label offset in braille dots. Must be positive;
	// merging treats zero as unset.
	TerminalFontSize float64 `koanf:"terminal_font_size" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
	// File receives log lines; empty disables logging.
	File   string `koanf:"file"`
	Caller bool   `koanf:"caller"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dataset: DatasetConfig{Path: "data", Region: "China"},
		View: ViewConfig{
			Width:      1280,
			Height:     960,
			Background: "white",
			Font: render.FontOption{
				Size:   24,
				Weight: "bold",
				Family: "serif",
				Color:  "white",
			},
			TerminalFontSize: 4,
		},
		Logging: LoggingConfig{Level: "info", Format: "json", File: "geopan.log"},
	}
}

// ViewOption converts the font settings for the render pipeline.
func (v ViewConfig) ViewOption() render.ViewOption {
	return render.ViewOption{Font: v.Font}
}

var validate = validator.New()

// Validate checks field constraints and colour names.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	if _, err := render.ParseColor(c.View.Background); err != nil {
		return fmt.Errorf("view.background: %w", err)
	}
	if c.View.Font.Color != "" {
		if _, err := render.ParseColor(c.View.Font.Color); err != nil {
			return fmt.Errorf("view.font.color: %w", err)
		}
	}
	return nil
}

// Load builds the configuration. path overrides the config file lookup;
// pass "" to use GEOPAN_CONFIG or DefaultPaths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	defaults := Default()

	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("GEOPAN_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKeys maps GEOPAN_* variables onto config paths. Anything else with the
// prefix is ignored.
var envKeys = map[string]string{
	"geopan_dataset_path":            "dataset.path",
	"geopan_dataset_region":          "dataset.region",
	"geopan_dataset_watch":           "dataset.watch",
	"geopan_view_width":              "view.width",
	"geopan_view_height":             "view.height",
	"geopan_view_background":         "view.background",
	"geopan_view_font_size":          "view.font.size",
	"geopan_view_font_weight":        "view.font.weight",
	"geopan_view_font_family":        "view.font.family",
	"geopan_view_font_color":         "view.font.color",
	"geopan_view_terminal_font_size": "view.terminal_font_size",
	"geopan_log_level":               "logging.level",
	"geopan_log_format":              "logging.format",
	"geopan_log_file":                "logging.file",
	"geopan_log_caller":              "logging.caller",
}

func envKey(key string) string {
	return envKeys[strings.ToLower(key)]
}
