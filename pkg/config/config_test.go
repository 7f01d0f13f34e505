package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Authority == "" || cfg.Bus.QueueSize <= 0 {
		t.Fatalf("incomplete defaults: %+v", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("default log level = %q", cfg.Log.Level)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	// no uvbus.yaml in the search paths; defaults and env apply
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with search paths: %v", err)
	}
	if cfg.Authority != "local" || cfg.Bus.QueueSize != 256 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uvbus.yaml")
	yaml := []byte("authority: veh42\nue_id: 66\nlog:\n  level: debug\nbus:\n  queue_size: 16\n")
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Authority != "veh42" || cfg.UeID != 66 {
		t.Fatalf("identity not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Bus.QueueSize != 16 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// untouched fields keep defaults
	if cfg.UeVersionMajor != 1 {
		t.Fatalf("ue_version_major = %d", cfg.UeVersionMajor)
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uvbus.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: shouty\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("invalid log level should be rejected")
	}
}
