package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
	t.Setenv("AI_BASE_URL", "https://api.example.com/v1")
	t.Setenv("AI_API_KEY", "test-key")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

ai:
  base_url: "https://api.example.com/v1"
  api_key: "test-key"
  model: "gpt-4o"
  request_timeout: "2m"
  max_retries: 3

corpus:
  default_page_size: 25
  max_page_size: 50

stats:
  queue_size: 64

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.AI.Model != "gpt-4o" {
		t.Errorf("ai.model = %q, want %q", cfg.AI.Model, "gpt-4o")
	}
	if cfg.AI.RequestTimeout != 2*time.Minute {
		t.Errorf("ai.request_timeout = %v, want 2m", cfg.AI.RequestTimeout)
	}
	if cfg.AI.MaxRetries != 3 {
		t.Errorf("ai.max_retries = %d, want 3", cfg.AI.MaxRetries)
	}
	if cfg.Corpus.DefaultPageSize != 25 {
		t.Errorf("corpus.default_page_size = %d, want 25", cfg.Corpus.DefaultPageSize)
	}
	if cfg.Stats.QueueSize != 64 {
		t.Errorf("stats.queue_size = %d, want 64", cfg.Stats.QueueSize)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("AI_MODEL", "gpt-4o-mini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("ai.model = %q, want gpt-4o-mini (ENV override)", cfg.AI.Model)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Corpus.MaxPageSize != 100 {
		t.Errorf("corpus.max_page_size = %d, want 100 (default)", cfg.Corpus.MaxPageSize)
	}
	if cfg.AI.RequestTimeout != 5*time.Minute {
		t.Errorf("ai.request_timeout = %v, want 5m (default)", cfg.AI.RequestTimeout)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestValidate_BcryptCostOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.BcryptCost = 40

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bcrypt cost > 31")
	}
}

func TestValidate_AIBaseURLNotHTTP(t *testing.T) {
	cfg := validConfig()
	cfg.AI.BaseURL = "ftp://example.com"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http base URL")
	}
}

func TestValidate_NegativeMaxRetries(t *testing.T) {
	cfg := validConfig()
	cfg.AI.MaxRetries = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative max retries")
	}
}

func TestValidate_PageSizeInconsistent(t *testing.T) {
	cfg := validConfig()
	cfg.Corpus.DefaultPageSize = 200
	cfg.Corpus.MaxPageSize = 100

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default page size exceeds max")
	}
}

func TestValidate_StatsQueueSizeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Stats.QueueSize = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero stats queue size")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Auth: AuthConfig{
			JWTSecret:  "this-is-a-very-long-jwt-secret-for-testing-32+",
			BcryptCost: 10,
		},
		AI: AIConfig{
			BaseURL:    "https://api.example.com/v1",
			APIKey:     "k",
			MaxRetries: 2,
		},
		Corpus: CorpusConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Stats: StatsConfig{
			QueueSize: 256,
		},
	}
}
