package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel == "" || c.MaxToolRounds != 6 || c.LogLevel != "warn" || c.DefaultProvider != "openrouter" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &config.Global{APIKey: "sk-file", DefaultModel: "openai/gpt-4o", MaxToolRounds: 3, OutputDir: "/tmp/out"}
	if err := config.Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != "sk-file" || got.DefaultModel != "openai/gpt-4o" || got.MaxToolRounds != 3 || got.OutputDir != "/tmp/out" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	t.Setenv("CHARTLOOM_API_KEY", "sk-env")
	got, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != "sk-env" {
		t.Fatalf("env should override file, got %q", got.APIKey)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	body := "CHARTLOOM_DEFAULT_MODEL=openai/gpt-4o\nCHARTLOOM_MAX_TOKENS=512\n"
	if err := os.WriteFile(filepath.Join(dir, config.DotEnvFile), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	// The process environment wins over .env.
	t.Setenv("CHARTLOOM_MAX_TOKENS", "99")
	t.Cleanup(func() { os.Unsetenv("CHARTLOOM_DEFAULT_MODEL") })

	c, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel != "openai/gpt-4o" {
		t.Fatalf("default_model from .env = %q", c.DefaultModel)
	}
	if c.MaxTokens != 99 {
		t.Fatalf("max_tokens = %d, want the process value", c.MaxTokens)
	}
}
