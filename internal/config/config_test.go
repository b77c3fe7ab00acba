package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geopan.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(PathEnvVar, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg.Dataset != want.Dataset || cfg.View != want.View || cfg.Logging != want.Logging {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
	if cfg.View.Font.Color != "white" || cfg.View.Font.Size != 24 {
		t.Errorf("font defaults = %+v", cfg.View.Font)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeYAML(t, `
dataset:
  path: /srv/maps
  region: Europe
view:
  width: 640
  font:
    color: "#ffcc00"
logging:
  level: debug
`)
	t.Setenv("GEOPAN_VIEW_WIDTH", "320")
	t.Setenv("GEOPAN_DATASET_WATCH", "true")
	t.Setenv("GEOPAN_UNRELATED", "ignored")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset.Path != "/srv/maps" || cfg.Dataset.Region != "Europe" {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if !cfg.Dataset.Watch {
		t.Error("GEOPAN_DATASET_WATCH not applied")
	}
	if cfg.View.Width != 320 {
		t.Errorf("view.width = %d, want env value 320", cfg.View.Width)
	}
	if cfg.View.Height != 960 {
		t.Errorf("view.height = %d, want default 960", cfg.View.Height)
	}
	if cfg.View.Font.Color != "#ffcc00" || cfg.View.Font.Family != "serif" {
		t.Errorf("font = %+v", cfg.View.Font)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoadFromConfigEnvVar(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(PathEnvVar, writeYAML(t, "dataset:\n  region: Asia\n"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset.Region != "Asia" {
		t.Errorf("region = %q, want Asia", cfg.Dataset.Region)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantSub string
	}{
		{"zero width", "view:\n  width: 0\n", "Width"},
		{"unknown log format", "logging:\n  format: xml\n", "Format"},
		{"bad background", "view:\n  background: nope\n", "view.background"},
		{"bad font colour", "view:\n  font:\n    color: \"#zz\"\n", "view.font.color"},
		{"empty dataset path", "dataset:\n  path: \"\"\n", "Path"},
		{"zero terminal font size", "view:\n  terminal_font_size: 0\n", "TerminalFontSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeYAML(t, tt.yaml))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantSub)
			}
		})
	}
}

func TestMissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestViewOption(t *testing.T) {
	opt := Default().View.ViewOption()
	if opt.Font.Color != "white" || opt.Font.Weight != "bold" {
		t.Errorf("ViewOption() = %+v", opt)
	}
}
