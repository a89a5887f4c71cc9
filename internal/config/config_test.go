package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"NewspaperAnalyzer/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		configPathEnv, databaseDSNEnv, databaseDrvEnv, geminiAPIKeyEnv, llmAPIKeyEnv,
		llmModelEnv, llmBaseURLEnv, appURLEnv, logLevelEnv,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Analysis.ChunkSize != 15000 {
		t.Fatalf("unexpected chunk size %d", cfg.Analysis.ChunkSize)
	}
	if cfg.LLM.CallInterval != 2*time.Second || cfg.Run.SourceInterval != 30*time.Second {
		t.Fatalf("unexpected intervals %v / %v", cfg.LLM.CallInterval, cfg.Run.SourceInterval)
	}
	if cfg.Availability.Attempts != 5 || cfg.Availability.Delay != 3*time.Minute {
		t.Fatalf("unexpected availability policy %+v", cfg.Availability)
	}
	if cfg.Run.Timezone != "Europe/Berlin" {
		t.Fatalf("unexpected timezone %s", cfg.Run.Timezone)
	}

	enabled := domain.EnabledSources(cfg.DomainSources())
	if len(enabled) != 1 || enabled[0].Name != "Mitteldeutsche Zeitung" {
		t.Fatalf("unexpected enabled sources %+v", enabled)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
database:
  driver: postgres
  dsn: postgres://file@localhost/db
llm:
  model: file-model
  callInterval: 5s
run:
  timezone: UTC
sources:
  - name: Testblatt
    url: https://example.org/epaper/
    enabled: true
    strategy: landing
    options:
      selector: a.pdf
`)
	t.Setenv(databaseDSNEnv, "postgres://env@localhost/db")
	t.Setenv(geminiAPIKeyEnv, "gemini-key")
	t.Setenv(llmAPIKeyEnv, "override-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Database.Driver != DriverPostgres || cfg.Database.DSN != "postgres://env@localhost/db" {
		t.Fatalf("unexpected database %+v", cfg.Database)
	}
	if cfg.LLM.Model != "file-model" || cfg.LLM.APIKey != "override-key" {
		t.Fatalf("unexpected llm %+v", cfg.LLM)
	}
	if cfg.LLM.CallInterval != 5*time.Second {
		t.Fatalf("duration not parsed: %v", cfg.LLM.CallInterval)
	}
	if cfg.LLM.Timeout != 2*time.Minute {
		t.Fatalf("default timeout lost: %v", cfg.LLM.Timeout)
	}
	if cfg.Run.Location() != time.UTC {
		t.Fatalf("unexpected location %v", cfg.Run.Location())
	}

	src, ok := cfg.FindSource("testblatt")
	if !ok || src.Strategy != domain.StrategyLanding || src.Option("selector", "") != "a.pdf" {
		t.Fatalf("unexpected source %+v", src)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "logging:\n  level: debug\n")
	t.Setenv(configPathEnv, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsBrokenFiles(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}

	path := writeConfig(t, "sources: [unterminated")
	if _, err := Load(path); !errors.Is(err, ErrConfigFile) {
		t.Fatalf("expected ErrConfigFile, got %v", err)
	}
}

func TestLoadUnknownTimezoneFallsBack(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "run:\n  timezone: Mars/Olympus\n"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Run.Timezone != defaultTimezone {
		t.Fatalf("expected fallback timezone, got %s", cfg.Run.Timezone)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		cfg := defaultConfig()
		cfg.LLM.APIKey = "key"
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "api key", mutate: func(c *Config) { c.LLM.APIKey = " " }, want: ErrMissingAPIKey},
		{name: "model", mutate: func(c *Config) { c.LLM.Model = "" }, want: ErrMissingModel},
		{name: "driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, want: ErrUnknownDriver},
		{name: "postgres dsn", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, want: ErrMissingDSN},
		{name: "chunk size", mutate: func(c *Config) { c.Analysis.ChunkSize = 0 }, want: ErrInvalidChunkSize},
		{name: "no enabled", mutate: func(c *Config) { c.Sources[0].Enabled = false }, want: ErrNoSources},
		{name: "bad url", mutate: func(c *Config) { c.Sources[1].URL = "ftp://x" }, want: ErrInvalidSource},
		{name: "bad strategy", mutate: func(c *Config) { c.Sources[0].Strategy = "scrape" }, want: ErrInvalidSource},
		{name: "duplicate", mutate: func(c *Config) { c.Sources[1].Name = "mitteldeutsche zeitung" }, want: ErrInvalidSource},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			cfg.Sources = append([]SourceConfig(nil), cfg.Sources...)
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) || !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateForRunRequiresAvailabilityURL(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.LLM.APIKey = "key"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("offline validation must pass without url: %v", err)
	}

	for _, bad := range []string{"", "deine-app", "ftp://app.example"} {
		cfg.Availability.URL = bad
		err := cfg.ValidateForRun()
		if !errors.Is(err, ErrMissingAppURL) || !errors.Is(err, domain.ErrConfiguration) {
			t.Fatalf("url %q: expected ErrMissingAppURL, got %v", bad, err)
		}
	}

	cfg.Availability.URL = "https://analyzer.example.org"
	if err := cfg.ValidateForRun(); err != nil {
		t.Fatalf("ValidateForRun error: %v", err)
	}

	cfg.LLM.APIKey = ""
	if err := cfg.ValidateForRun(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected base validation errors too, got %v", err)
	}
}

func TestLoadAvailabilityURLFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(appURLEnv, "https://analyzer.example.org")
	t.Setenv(geminiAPIKeyEnv, "key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := cfg.ValidateForRun(); err != nil {
		t.Fatalf("ValidateForRun error: %v", err)
	}
}
