package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Retrieve.TopK != 8 {
		t.Errorf("expected TopK=8, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Retrieve.MinScore != 0.25 {
		t.Errorf("expected MinScore=0.25, got %f", cfg.Retrieve.MinScore)
	}
	if cfg.Context.MaxChars != 3000 {
		t.Errorf("expected MaxChars=3000, got %d", cfg.Context.MaxChars)
	}
	if cfg.Ingest.ChunkChars != 800 {
		t.Errorf("expected ChunkChars=800, got %d", cfg.Ingest.ChunkChars)
	}
	if cfg.Ingest.ChunkOverlap != 150 {
		t.Errorf("expected ChunkOverlap=150, got %d", cfg.Ingest.ChunkOverlap)
	}
	if cfg.Generate.TimeoutSeconds != 120 {
		t.Errorf("expected TimeoutSeconds=120, got %d", cfg.Generate.TimeoutSeconds)
	}
	if cfg.Embedding.Dimension != 384 {
		t.Errorf("expected Dimension=384, got %d", cfg.Embedding.Dimension)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "corpusqa.yaml")

	content := `
retrieve:
  top_k: 4
  min_score: 0.5
context:
  max_chars: 1000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Retrieve.TopK != 4 {
		t.Errorf("expected TopK=4, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Retrieve.MinScore != 0.5 {
		t.Errorf("expected MinScore=0.5, got %f", cfg.Retrieve.MinScore)
	}
	if cfg.Context.MaxChars != 1000 {
		t.Errorf("expected MaxChars=1000, got %d", cfg.Context.MaxChars)
	}
	// Untouched sections keep defaults.
	if cfg.Ingest.ChunkChars != 800 {
		t.Errorf("expected default ChunkChars=800, got %d", cfg.Ingest.ChunkChars)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OLLAMA_URL", "http://remote:11434/api/generate")
	t.Setenv("OLLAMA_MODEL", "mistral")

	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Generate.BaseURL != "http://remote:11434" {
		t.Errorf("expected OLLAMA_URL base to be stripped, got %q", cfg.Generate.BaseURL)
	}
	if cfg.Generate.Model != "mistral" {
		t.Errorf("expected model override, got %q", cfg.Generate.Model)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "corpusqa.yaml")

	content := "retrieve:\n  top_k: 3\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Retrieve.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Retrieve.TopK)
	}
}

func TestIndexDBPath(t *testing.T) {
	path := IndexDBPath("/work")
	want := filepath.Join("/work", "index", "corpus.db")
	if path != want {
		t.Errorf("expected %q, got %q", want, path)
	}
}
