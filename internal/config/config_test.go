package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxContentBytes != 1<<20 {
		t.Errorf("MaxContentBytes = %d, want %d", cfg.MaxContentBytes, 1<<20)
	}
	if cfg.MaxTitleChars != 100 {
		t.Errorf("MaxTitleChars = %d, want 100", cfg.MaxTitleChars)
	}
	if cfg.DefaultSearchLimit != 10 || cfg.MaxSearchLimit != 100 {
		t.Errorf("search limits = %d/%d, want 10/100", cfg.DefaultSearchLimit, cfg.MaxSearchLimit)
	}
	if cfg.Weights.Content != 1 || cfg.Weights.Title != 3 || cfg.Weights.Topic != 5 {
		t.Errorf("weights = %+v, want 1/3/5", cfg.Weights)
	}
	if cfg.StrictDates {
		t.Error("StrictDates should default to false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load with no config file failed: %v", err)
	}
	if cfg.StorageRoot != root {
		t.Errorf("StorageRoot = %q, want %q", cfg.StorageRoot, root)
	}
	if cfg.DefaultSearchLimit != 10 {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	root := t.TempDir()
	data := `{"max_topics": 3, "strict_dates": true, "score_weights": {"topic": 7}}`
	if err := os.WriteFile(filepath.Join(root, "config.json"), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxTopics != 3 {
		t.Errorf("MaxTopics = %d, want 3", cfg.MaxTopics)
	}
	if !cfg.StrictDates {
		t.Error("StrictDates override not applied")
	}
	if cfg.Weights.Topic != 7 {
		t.Errorf("Weights.Topic = %d, want 7", cfg.Weights.Topic)
	}
	// Fields absent from the file keep defaults.
	if cfg.Weights.Content != 1 || cfg.Weights.Title != 3 {
		t.Errorf("unset weights changed: %+v", cfg.Weights)
	}
	if cfg.MaxContentBytes != 1<<20 {
		t.Errorf("MaxContentBytes = %d, want default", cfg.MaxContentBytes)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "config.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(root); err == nil {
		t.Error("malformed config file should fail")
	}
}

func TestLoadEnvLogFormat(t *testing.T) {
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestResolveRootEnv(t *testing.T) {
	t.Setenv(EnvStorageRoot, "/tmp/recap-test-root")

	root, err := ResolveRoot()
	if err != nil {
		t.Fatalf("ResolveRoot failed: %v", err)
	}
	if root != "/tmp/recap-test-root" {
		t.Errorf("root = %q", root)
	}
}

func TestResolveRootDefault(t *testing.T) {
	t.Setenv(EnvStorageRoot, "")

	root, err := ResolveRoot()
	if err != nil {
		t.Fatalf("ResolveRoot failed: %v", err)
	}
	if filepath.Base(root) != ".recap" {
		t.Errorf("default root = %q, want ~/.recap", root)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{MaxTopics: 5, LogFormat: "json"}

	merged := Merge(base, overlay)
	if merged.MaxTopics != 5 {
		t.Errorf("MaxTopics = %d, want 5", merged.MaxTopics)
	}
	if merged.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", merged.LogFormat)
	}
	if merged.MaxContentBytes != base.MaxContentBytes {
		t.Errorf("zero overlay field should keep base value")
	}
}
