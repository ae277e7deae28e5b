package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/field-time-tracker/internal/config"
)

// isolate points HOME at a temp dir and clears every override variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		config.EnvStorage, config.EnvDataDir, config.EnvRedisURL,
		config.EnvLogLevel, config.EnvShareBaseURL, config.EnvRotation,
	} {
		t.Setenv(k, "")
	}
	return home
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".ftt")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("first run config = %+v, want defaults", cfg)
	}

	data, err := os.ReadFile(filepath.Join(home, ".ftt", "config.json"))
	if err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if !strings.Contains(string(data), "// ftt configuration") {
		t.Error("template lacks its header comment")
	}

	// The template itself must parse back to the defaults.
	again, err := config.Load()
	if err != nil {
		t.Fatalf("Load after template: %v", err)
	}
	if again != config.Default() {
		t.Errorf("template config = %+v, want defaults", again)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `{
  // only the rotation is customised
  "rotation": {"default_minutes": 8}
}`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rotation.DefaultMinutes != 8 {
		t.Errorf("DefaultMinutes = %d, want 8", cfg.Rotation.DefaultMinutes)
	}
	if cfg.Storage.Backend != config.BackendFile || cfg.Share.BaseURL != config.DefaultShareBaseURL || cfg.Log.Level != "info" {
		t.Errorf("defaults not filled: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvStorage, "Redis")
	t.Setenv(config.EnvRedisURL, "redis://bench:6379/2")
	t.Setenv(config.EnvDataDir, "/srv/ftt")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvShareBaseURL, "https://example.org/ftt/")
	t.Setenv(config.EnvRotation, "7")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := config.Default()
	want.Storage.Backend = config.BackendRedis
	want.Storage.RedisURL = "redis://bench:6379/2"
	want.Storage.Dir = "/srv/ftt"
	want.Log.Level = "debug"
	want.Share.BaseURL = "https://example.org/ftt/"
	want.Rotation.DefaultMinutes = 7
	if cfg != want {
		t.Errorf("cfg = %+v\nwant %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "broken json", file: `{"storage": `},
		{name: "unknown backend", file: `{"storage": {"backend": "s3"}}`},
		{name: "bad rotation env", env: map[string]string{config.EnvRotation: "soon"}},
		{name: "zero rotation env", env: map[string]string{config.EnvRotation: "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			if tt.file != "" {
				writeConfig(t, home, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
