package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.MaxRetries != 3 {
		t.Errorf("expected max_retries 3, got %d", cfg.MaxRetries)
	}
	if cfg.FailureThreshold != 5 {
		t.Errorf("expected failure_threshold 5, got %d", cfg.FailureThreshold)
	}
	if cfg.Cooldown != 30*time.Second {
		t.Errorf("expected cooldown 30s, got %s", cfg.Cooldown)
	}
	if cfg.RetryDelay != time.Second {
		t.Errorf("expected retry_delay 1s, got %s", cfg.RetryDelay)
	}
	if cfg.ColdStartThreshold != 5*time.Second {
		t.Errorf("expected cold_start_threshold 5s, got %s", cfg.ColdStartThreshold)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected environment 'development', got %q", cfg.Environment)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Environment = "qa"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid environment")
	}
}

func TestValidateRejectsNegativeRetries(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.MaxRetries = -1

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative max_retries")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	yml := `
name: marketedge-api
environment: production
max_retries: 7
failure_threshold: 2
cooldown: 10s
retry_delay: 250ms
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(LoaderOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "marketedge-api" {
		t.Errorf("expected name 'marketedge-api', got %q", cfg.Name)
	}
	if cfg.MaxRetries != 7 {
		t.Errorf("expected max_retries 7, got %d", cfg.MaxRetries)
	}
	if cfg.FailureThreshold != 2 {
		t.Errorf("expected failure_threshold 2, got %d", cfg.FailureThreshold)
	}
	if cfg.Cooldown != 10*time.Second {
		t.Errorf("expected cooldown 10s, got %s", cfg.Cooldown)
	}
	if cfg.RetryDelay != 250*time.Millisecond {
		t.Errorf("expected retry_delay 250ms, got %s", cfg.RetryDelay)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	// Unset fields still receive defaults.
	if cfg.ColdStartThreshold != 5*time.Second {
		t.Errorf("expected default cold_start_threshold, got %s", cfg.ColdStartThreshold)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BOOTKIT_MAX_RETRIES", "9")
	t.Setenv("BOOTKIT_NAME", "from-env")

	cfg, err := Load(LoaderOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxRetries != 9 {
		t.Errorf("expected max_retries 9 from env, got %d", cfg.MaxRetries)
	}
	if cfg.Name != "from-env" {
		t.Errorf("expected name 'from-env', got %q", cfg.Name)
	}
}

func TestLoadMissingConfigFileIsError(t *testing.T) {
	_, err := Load(LoaderOptions{ConfigFile: "does-not-exist.yml"})
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadInvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	yml := `
environment: nonsense
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := Load(LoaderOptions{ConfigFile: path}); err == nil {
		t.Error("expected validation error for bad environment")
	}
}
