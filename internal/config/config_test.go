package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Filter.WriteOp != 2 {
		t.Errorf("expected WriteOp=2, got %d", cfg.Filter.WriteOp)
	}
	if cfg.Sample.Seed != 1 {
		t.Errorf("expected Sample.Seed=1, got %d", cfg.Sample.Seed)
	}
	if cfg.Split.Folds != 5 {
		t.Errorf("expected Folds=5, got %d", cfg.Split.Folds)
	}
	if cfg.Split.PipelinePrefix != "pipeline_" {
		t.Errorf("expected PipelinePrefix=pipeline_, got %s", cfg.Split.PipelinePrefix)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("TRACEPREP_SAMPLE_SEED", "")
	t.Setenv("TRACEPREP_SPLIT_SEED", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Sample.Seed = 99
	cfg.Split.Folds = 10

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Sample.Seed != 99 {
		t.Errorf("expected Sample.Seed=99, got %d", loaded.Sample.Seed)
	}
	if loaded.Split.Folds != 10 {
		t.Errorf("expected Folds=10, got %d", loaded.Split.Folds)
	}
}

func TestConfig_LoadEmptyPath(t *testing.T) {
	t.Setenv("TRACEPREP_SAMPLE_SEED", "")
	t.Setenv("TRACEPREP_SPLIT_SEED", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Filter.WriteOp != 2 {
		t.Errorf("expected defaults from empty path, got WriteOp=%d", cfg.Filter.WriteOp)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TRACEPREP_SAMPLE_SEED", "123")
	t.Setenv("TRACEPREP_SPLIT_SEED", "456")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sample.Seed != 123 {
		t.Errorf("expected Sample.Seed=123, got %d", cfg.Sample.Seed)
	}
	if cfg.Split.Seed != 456 {
		t.Errorf("expected Split.Seed=456, got %d", cfg.Split.Seed)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Split.Folds = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for folds=1")
	}

	cfg = DefaultConfig()
	cfg.Filter.WriteOp = -3
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative write_op")
	}
}
