package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	IsProduction  bool
	IsDevelopment bool

	// Discord Bot Configuration
	DiscordToken  string   `env:"DISCORD_TOKEN"`
	DiscordGuild  string   `env:"DISCORD_GUILD"`
	CommandPrefix string   `env:"COMMAND_PREFIX" envDefault:"!"`
	Owners        []string `env:"BOT_OWNERS" envSeparator:","`

	// MongoDB Configuration
	MongoDBURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/commando"`
	MongoDBDatabase string `env:"MONGODB_DATABASE" envDefault:"commando"`

	// Command engine
	PromptTimeout     time.Duration `env:"PROMPT_TIMEOUT" envDefault:"30s"`
	PromptMaxAttempts int           `env:"PROMPT_MAX_ATTEMPTS" envDefault:"3"`
	HelpSimpleList    bool          `env:"HELP_SIMPLE_LIST" envDefault:"false"`

	// Localization
	LocalesDir    string `env:"LOCALES_DIR"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en-US"`

	// Observability
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
}

// Load loads the configuration from a .env file, if any, and the environment
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Derived properties
	cfg.IsProduction = cfg.Environment == "production"
	cfg.IsDevelopment = !cfg.IsProduction

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}
	if c.PromptTimeout <= 0 {
		return fmt.Errorf("PROMPT_TIMEOUT must be positive, got %s", c.PromptTimeout)
	}
	if c.PromptMaxAttempts <= 0 {
		return fmt.Errorf("PROMPT_MAX_ATTEMPTS must be positive, got %d", c.PromptMaxAttempts)
	}
	return nil
}
