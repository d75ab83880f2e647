package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "COMPLIANCE_SCANNER_CONFIG"
	databaseDSNEnv  = "DATABASE_DSN"
	githubTokenEnv  = "GITHUB_TOKEN"
	githubRepoEnv   = "GITHUB_REPO"
	googleAPIKeyEnv = "GOOGLE_API_KEY"
	searchEngineEnv = "SEARCH_ENGINE_ID"
	openAIAPIKeyEnv = "OPENAI_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Source    SourceConfig    `yaml:"source"`
	Google    GoogleConfig    `yaml:"google"`
	GitHub    GitHubConfig    `yaml:"github"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the HTTP request surface.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// DatabaseConfig describes the optional report-archive Postgres connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SourceConfig groups settings for publication retrieval.
type SourceConfig struct {
	BaseURL        string   `yaml:"baseUrl"`
	SearchTerms    []string `yaml:"searchTerms"`
	MaxSearchTerms int      `yaml:"maxSearchTerms"`
	TimeoutSeconds int      `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-request network ceiling.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// GoogleConfig wires the optional Custom Search credentials.
type GoogleConfig struct {
	APIKey   string `yaml:"apiKey"`
	EngineID string `yaml:"engineId"`
}

// Configured reports whether the secondary search adapter can activate.
// Both credentials are required; anything less is a silent capability downgrade.
func (g GoogleConfig) Configured() bool {
	return g.APIKey != "" && g.EngineID != ""
}

// GitHubConfig describes where rendered digests are published.
type GitHubConfig struct {
	Token string `yaml:"token"`
	Repo  string `yaml:"repo"`
}

// OpenAIConfig defines the optional model-backed relevance strategy. The
// keyword scorer remains the default; Enabled switches the strategy over.
type OpenAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// SchedulerConfig defines the periodic scan interval for server mode.
type SchedulerConfig struct {
	Enabled       bool `yaml:"enabled"`
	IntervalHours int  `yaml:"intervalHours"`
}

// Interval resolves the configured interval, defaulting to daily.
func (s SchedulerConfig) Interval() time.Duration {
	if s.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.IntervalHours) * time.Hour
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Source.SearchTerms) == 0 {
		cfg.Source.SearchTerms = defaultConfig().Source.SearchTerms
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(githubTokenEnv); v != "" {
		c.GitHub.Token = v
	}

	if v := os.Getenv(githubRepoEnv); v != "" {
		c.GitHub.Repo = v
	}

	if v := os.Getenv(googleAPIKeyEnv); v != "" {
		c.Google.APIKey = v
	}

	if v := os.Getenv(searchEngineEnv); v != "" {
		c.Google.EngineID = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}
	if len(override.Server.AllowedOrigins) > 0 {
		base.Server.AllowedOrigins = override.Server.AllowedOrigins
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if len(override.Source.SearchTerms) > 0 {
		base.Source.SearchTerms = override.Source.SearchTerms
	}
	if override.Source.MaxSearchTerms != 0 {
		base.Source.MaxSearchTerms = override.Source.MaxSearchTerms
	}
	if override.Source.TimeoutSeconds != 0 {
		base.Source.TimeoutSeconds = override.Source.TimeoutSeconds
	}

	if override.Google.APIKey != "" {
		base.Google.APIKey = override.Google.APIKey
	}
	if override.Google.EngineID != "" {
		base.Google.EngineID = override.Google.EngineID
	}

	if override.GitHub.Token != "" {
		base.GitHub.Token = override.GitHub.Token
	}
	if override.GitHub.Repo != "" {
		base.GitHub.Repo = override.GitHub.Repo
	}

	if override.OpenAI.Enabled {
		base.OpenAI.Enabled = true
	}
	if override.OpenAI.BaseURL != "" {
		base.OpenAI.BaseURL = override.OpenAI.BaseURL
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.IntervalHours != 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Source: SourceConfig{
			BaseURL: "https://csrc.nist.gov",
			SearchTerms: []string{
				"NIST SP 800-53", "NIST SP 800-171", "NIST SP 800-218",
				"cybersecurity framework", "secure software development",
				"supply chain security", "SSDF",
			},
			MaxSearchTerms: 3,
			TimeoutSeconds: 30,
		},
		GitHub: GitHubConfig{Repo: "your-org/nist-compliance-reports"},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Scheduler: SchedulerConfig{Enabled: false, IntervalHours: 24},
	}
}
