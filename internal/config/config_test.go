package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDir(t *testing.T) {
	path, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("DefaultDataDir failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".tracker")

	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDefaultRequirement, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, dir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.DefaultRequirement != 2 {
		t.Errorf("DefaultRequirement = %d, want 2", cfg.DefaultRequirement)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDefaultRequirement, "")

	content := "log_level: debug\ndefault_requirement: 4\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.DefaultRequirement != 4 {
		t.Errorf("file values not applied: %+v", cfg)
	}

	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvDefaultRequirement, "500")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env LogLevel not applied: %s", cfg.LogLevel)
	}
	if cfg.DefaultRequirement != 99 {
		t.Errorf("DefaultRequirement = %d, want clamped 99", cfg.DefaultRequirement)
	}
}

func TestLoad_InvalidEnvRequirement(t *testing.T) {
	t.Setenv(EnvDataDir, t.TempDir())
	t.Setenv(EnvDefaultRequirement, "two")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric requirement")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("log_level: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDefaultRequirement, "")

	if err := SaveConfig(&Config{DataDir: dir, LogLevel: "error", DefaultRequirement: 3}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "error" || cfg.DefaultRequirement != 3 {
		t.Errorf("round trip mismatch: %+v", cfg)
	}
}

func TestLoad_ExplicitZeroRequirement(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDefaultRequirement, "")

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("default_requirement: 0\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultRequirement != 0 {
		t.Errorf("DefaultRequirement = %d, want explicit 0", cfg.DefaultRequirement)
	}
}

func TestSaveConfig_ZeroRequirementSurvives(t *testing.T) {
	dir := t.TempDir()

	if err := SaveConfig(&Config{DataDir: dir, LogLevel: "info", DefaultRequirement: 0}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	cfg, err := LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.DefaultRequirement != 0 {
		t.Errorf("DefaultRequirement = %d, want 0", cfg.DefaultRequirement)
	}
}

func TestLoadFile_IgnoresEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDefaultRequirement, "7")

	cfg, err := LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.DataDir != dir || cfg.LogLevel != "info" || cfg.DefaultRequirement != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/tracker-data")

	dir, err := ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir failed: %v", err)
	}
	if dir != "/tmp/tracker-data" {
		t.Errorf("dir = %s, want /tmp/tracker-data", dir)
	}
}
