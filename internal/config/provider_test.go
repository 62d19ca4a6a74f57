package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProviderConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dns-provider.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProviderConfigFromPath(t *testing.T) {
	content := `provider: registrar
strict_operations: true
settings:
  base_url: https://registrar.example.net/api
  api_key: key123
`
	cfg, err := LoadProviderConfigFromPath(writeProviderConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "registrar" {
		t.Errorf("expected provider 'registrar', got %q", cfg.Provider)
	}
	if !cfg.StrictOperations {
		t.Error("expected strict_operations true")
	}
	if cfg.Settings["base_url"] != "https://registrar.example.net/api" {
		t.Errorf("unexpected base_url: %q", cfg.Settings["base_url"])
	}
}

func TestLoadProviderConfigFromPath_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_REGISTRAR_KEY", "expanded-key")
	content := `provider: registrar
settings:
  api_key: ${TEST_REGISTRAR_KEY}
`
	cfg, err := LoadProviderConfigFromPath(writeProviderConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings["api_key"] != "expanded-key" {
		t.Errorf("expected expanded api_key, got %q", cfg.Settings["api_key"])
	}
}

func TestLoadProviderConfigFromPath_MissingProvider(t *testing.T) {
	if _, err := LoadProviderConfigFromPath(writeProviderConfig(t, "settings: {}\n")); err == nil {
		t.Fatal("expected error for missing provider, got nil")
	}
}

func TestLoadProviderConfigFromPath_MissingFile(t *testing.T) {
	if _, err := LoadProviderConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
