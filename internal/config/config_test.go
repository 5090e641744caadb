package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsUsable(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr == "" {
		t.Fatal("expected a default server address")
	}
	if cfg.Sampling.DefaultStratumSize <= 0 {
		t.Fatalf("expected a positive default stratum size, got %v", cfg.Sampling.DefaultStratumSize)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "server:\n  addr: \":9090\"\nsampling:\n  default_stratum_size: 250\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected overridden addr ':9090', got %q", cfg.Server.Addr)
	}
	if cfg.Sampling.DefaultStratumSize != 250 {
		t.Fatalf("expected overridden default stratum size 250, got %v", cfg.Sampling.DefaultStratumSize)
	}
	if cfg.Sketches.CountMinDepth != Default().Sketches.CountMinDepth {
		t.Fatalf("expected untouched field to keep its default, got %d", cfg.Sketches.CountMinDepth)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
