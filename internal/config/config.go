package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
	OpenWebNinja OpenWebNinjaConfig `yaml:"openwebninja" mapstructure:"openwebninja"`
	Hunter       HunterConfig       `yaml:"hunter" mapstructure:"hunter"`
	Search       SearchConfig       `yaml:"search" mapstructure:"search"`
	Enrich       EnrichConfig       `yaml:"enrich" mapstructure:"enrich"`
	Scrape       ScrapeConfig       `yaml:"scrape" mapstructure:"scrape"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the local saved-search database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OpenWebNinjaConfig holds OpenWebNinja API settings.
type OpenWebNinjaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HunterConfig holds Hunter.io API settings.
type HunterConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig configures the lead search aggregator.
type SearchConfig struct {
	PageSize     int     `yaml:"page_size" mapstructure:"page_size"`
	Language     string  `yaml:"language" mapstructure:"language"`
	Region       string  `yaml:"region" mapstructure:"region"`
	RateLimit    float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	FilterChains bool    `yaml:"filter_chains" mapstructure:"filter_chains"`
}

// EnrichConfig configures the Hunter email enrichment pass.
type EnrichConfig struct {
	DelayMillis int `yaml:"delay_millis" mapstructure:"delay_millis"`
	BatchSize   int `yaml:"batch_size" mapstructure:"batch_size"`
}

// ScrapeConfig configures the contact-page scraping fallback.
type ScrapeConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DelayMillis int `yaml:"delay_millis" mapstructure:"delay_millis"`
	BatchSize   int `yaml:"batch_size" mapstructure:"batch_size"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("JFB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "lead-command.db")
	v.SetDefault("openwebninja.base_url", "https://api.openwebninja.com/local-business-data")
	v.SetDefault("hunter.base_url", "https://api.hunter.io/v2")
	v.SetDefault("search.page_size", 50)
	v.SetDefault("search.language", "en")
	v.SetDefault("search.region", "us")
	v.SetDefault("search.rate_limit", 5)
	v.SetDefault("search.filter_chains", true)
	v.SetDefault("enrich.delay_millis", 200)
	v.SetDefault("enrich.batch_size", 10)
	v.SetDefault("scrape.timeout_secs", 5)
	v.SetDefault("scrape.delay_millis", 200)
	v.SetDefault("scrape.batch_size", 10)
	v.SetDefault("server.port", 3000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration required for a given mode is
// present. Modes: "search" (OpenWebNinja), "enrich" (Hunter), "serve".
func (c *Config) Validate(mode string) error {
	var missing []string

	switch mode {
	case "search":
		if c.OpenWebNinja.Key == "" {
			missing = append(missing, "openwebninja.key is required")
		}
	case "enrich":
		if c.Hunter.Key == "" {
			missing = append(missing, "hunter.key is required")
		}
	case "serve":
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
