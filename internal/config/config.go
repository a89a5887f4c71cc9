package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"NewspaperAnalyzer/internal/domain"
)

const (
	defaultTimezone = "Europe/Berlin"
	configPathEnv   = "NEWSPAPER_ANALYZER_CONFIG"
	databaseDSNEnv  = "DATABASE_DSN"
	databaseDrvEnv  = "DATABASE_DRIVER"
	geminiAPIKeyEnv = "GEMINI_API_KEY"
	llmAPIKeyEnv    = "LLM_API_KEY"
	llmModelEnv     = "LLM_MODEL"
	llmBaseURLEnv   = "LLM_BASE_URL"
	appURLEnv       = "STREAMLIT_APP_URL"
	logLevelEnv     = "LOG_LEVEL"
)

// Database drivers understood by the storage adapter.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	LLM          LLMConfig          `yaml:"llm"`
	Availability AvailabilityConfig `yaml:"availability"`
	Download     DownloadConfig     `yaml:"download"`
	Analysis     AnalysisConfig     `yaml:"analysis"`
	Run          RunConfig          `yaml:"run"`
	Logging      LoggingConfig      `yaml:"logging"`
	Sources      []SourceConfig     `yaml:"sources"`
}

// DatabaseConfig selects the SQL driver and its connection string. An empty
// sqlite DSN means the default file under the XDG data directory.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LLMConfig defines how to contact an OpenAI-compatible chat endpoint.
type LLMConfig struct {
	BaseURL      string        `yaml:"baseUrl"`
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"apiKey"`
	SystemPrompt string        `yaml:"systemPrompt"`
	Temperature  float32       `yaml:"temperature"`
	Timeout      time.Duration `yaml:"timeout"`
	CallInterval time.Duration `yaml:"callInterval"`
}

// AvailabilityConfig describes the probe run before each daily run.
// An empty URL disables the probe.
type AvailabilityConfig struct {
	URL      string        `yaml:"url"`
	Attempts uint          `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DownloadConfig limits PDF downloads.
type DownloadConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	MaxBytes  int64         `yaml:"maxBytes"`
	UserAgent string        `yaml:"userAgent"`
}

// AnalysisConfig tunes chunking.
type AnalysisConfig struct {
	ChunkSize int `yaml:"chunkSize"`
}

// RunConfig defines the pause between sources and the calendar timezone.
type RunConfig struct {
	SourceInterval time.Duration  `yaml:"sourceInterval"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the run timezone string to a time.Location.
func (r RunConfig) Location() *time.Location {
	if r.location != nil {
		return r.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoggingConfig sets the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes a single newspaper with its fetch strategy.
type SourceConfig struct {
	Name     string            `yaml:"name"`
	URL      string            `yaml:"url"`
	Enabled  bool              `yaml:"enabled"`
	Strategy string            `yaml:"strategy"`
	Options  map[string]string `yaml:"options"`
}

// Load reads .env, the YAML file at path (or $NEWSPAPER_ANALYZER_CONFIG) and
// applies environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot read .env: %v", err)
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %w", ErrConfigFile, path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %w", ErrConfigFile, path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg, nil
}

// DomainSources converts the configured list into domain sources, keeping order.
func (c Config) DomainSources() []domain.Source {
	sources := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		sources = append(sources, domain.Source{
			Name:     s.Name,
			URL:      s.URL,
			Enabled:  s.Enabled,
			Strategy: s.Strategy,
			Options:  s.Options,
		})
	}
	return sources
}

// FindSource looks a source up by name, ignoring case. Disabled sources are
// returned too.
func (c Config) FindSource(name string) (domain.Source, bool) {
	for _, s := range c.DomainSources() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return domain.Source{}, false
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(databaseDrvEnv); v != "" {
		c.Database.Driver = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(llmBaseURLEnv); v != "" {
		c.LLM.BaseURL = v
	}

	if v := os.Getenv(appURLEnv); v != "" {
		c.Availability.URL = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Run.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		tz = defaultTimezone
		if loc, err = time.LoadLocation(tz); err != nil {
			loc = time.UTC
		}
	}
	c.Run.Timezone = tz
	c.Run.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Database.Driver != "" {
		base.Database.Driver = override.Database.Driver
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.LLM.BaseURL != "" {
		base.LLM.BaseURL = override.LLM.BaseURL
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.SystemPrompt != "" {
		base.LLM.SystemPrompt = override.LLM.SystemPrompt
	}
	if override.LLM.Temperature != 0 {
		base.LLM.Temperature = override.LLM.Temperature
	}
	if override.LLM.Timeout != 0 {
		base.LLM.Timeout = override.LLM.Timeout
	}
	if override.LLM.CallInterval != 0 {
		base.LLM.CallInterval = override.LLM.CallInterval
	}

	if override.Availability.URL != "" {
		base.Availability.URL = override.Availability.URL
	}
	if override.Availability.Attempts != 0 {
		base.Availability.Attempts = override.Availability.Attempts
	}
	if override.Availability.Delay != 0 {
		base.Availability.Delay = override.Availability.Delay
	}
	if override.Availability.Timeout != 0 {
		base.Availability.Timeout = override.Availability.Timeout
	}

	if override.Download.Timeout != 0 {
		base.Download.Timeout = override.Download.Timeout
	}
	if override.Download.MaxBytes != 0 {
		base.Download.MaxBytes = override.Download.MaxBytes
	}
	if override.Download.UserAgent != "" {
		base.Download.UserAgent = override.Download.UserAgent
	}

	if override.Analysis.ChunkSize != 0 {
		base.Analysis.ChunkSize = override.Analysis.ChunkSize
	}

	if override.Run.SourceInterval != 0 {
		base.Run.SourceInterval = override.Run.SourceInterval
	}
	if override.Run.Timezone != "" {
		base.Run.Timezone = override.Run.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Driver: DriverSQLite},
		LLM: LLMConfig{
			BaseURL:      "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:        "gemini-1.5-flash",
			Temperature:  0.2,
			Timeout:      2 * time.Minute,
			CallInterval: 2 * time.Second,
		},
		Availability: AvailabilityConfig{
			Attempts: 5,
			Delay:    3 * time.Minute,
			Timeout:  30 * time.Second,
		},
		Download: DownloadConfig{
			Timeout:  60 * time.Second,
			MaxBytes: 100 << 20,
		},
		Analysis: AnalysisConfig{ChunkSize: 15000},
		Run: RunConfig{
			SourceInterval: 30 * time.Second,
			Timezone:       defaultTimezone,
		},
		Logging: LoggingConfig{Level: "info"},
		Sources: []SourceConfig{
			{
				Name:     "Mitteldeutsche Zeitung",
				URL:      "https://epaper.mz-web.de/today.pdf",
				Enabled:  true,
				Strategy: domain.StrategyDirect,
			},
			{
				Name:     "Volksstimme",
				URL:      "https://epaper.volksstimme.de/today.pdf",
				Enabled:  false,
				Strategy: domain.StrategyDirect,
			},
		},
	}
}
