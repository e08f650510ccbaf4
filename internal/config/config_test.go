package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("default debounce = %v", cfg.Watch.Debounce)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("default exclude dirs empty")
	}
	if cfg.Output.HTML != "" || cfg.History.Path != "" || cfg.Metrics.Addr != "" {
		t.Error("optional outputs should default to disabled")
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "perlxref.toml")
	content := `
[exclude]
dirs = ["vendor"]
files = ["*.bak"]

[output]
html = "report.html"

[watch]
debounce = 250000000
events_per_second = 5.0

[history]
path = "xref.db"

[metrics]
addr = ":9321"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Exclude.Dirs[0] != "vendor" || cfg.Exclude.Files[0] != "*.bak" {
		t.Errorf("excludes = %+v", cfg.Exclude)
	}
	if cfg.Output.HTML != "report.html" {
		t.Errorf("output = %q", cfg.Output.HTML)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.EventsPerSecond != 5 {
		t.Errorf("events per second = %v", cfg.Watch.EventsPerSecond)
	}
	if cfg.Watch.Burst != 4 {
		t.Errorf("unset burst should default, got %d", cfg.Watch.Burst)
	}
	if cfg.History.Path != "xref.db" || cfg.Metrics.Addr != ":9321" {
		t.Errorf("history/metrics = %q %q", cfg.History.Path, cfg.Metrics.Addr)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[exclude\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}
