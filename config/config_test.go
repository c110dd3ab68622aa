package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg != defaults() {
		t.Errorf("want defaults %+v, got %+v", defaults(), cfg)
	}
}

func TestLoad_MalformedFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg := Load(dir); cfg != defaults() {
		t.Errorf("want defaults, got %+v", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(`{"result":"42"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(dir)
	if cfg.Result != "42" {
		t.Errorf("want result 42, got %q", cfg.Result)
	}
	if cfg.ComputeDelay != "2s" || cfg.BufferSize != 16 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "profile")
	want := Config{Theme: "light", ComputeDelay: "500ms", Result: "done", BufferSize: 4, LogLevel: "debug"}

	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(dir); got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}
}

func TestDelay(t *testing.T) {
	if got := (Config{ComputeDelay: "250ms"}).Delay(); got != 250*time.Millisecond {
		t.Errorf("want 250ms, got %s", got)
	}
	if got := (Config{ComputeDelay: "soon"}).Delay(); got != 2*time.Second {
		t.Errorf("bad input: want default 2s, got %s", got)
	}
	if got := (Config{ComputeDelay: "-1s"}).Delay(); got != 2*time.Second {
		t.Errorf("negative: want default 2s, got %s", got)
	}
}

func TestDefaults_LeaveThemeToTerminal(t *testing.T) {
	if theme := Load(t.TempDir()).Theme; theme != "" {
		t.Errorf("default theme should be empty for autodetect, got %q", theme)
	}
}
