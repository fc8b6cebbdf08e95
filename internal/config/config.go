package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Preference store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Question source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	Questions        Questions `mapstructure:"questions"`
	Quiz             Quiz      `mapstructure:"quiz"`
	DB               DB        `mapstructure:"database"` // preference store section
	Server           Server    `mapstructure:"server"`
	Sessions         Sessions  `mapstructure:"sessions"`
}

// Questions configures where question banks come from.
type Questions struct {
	Source         string        `mapstructure:"source"`          // file or http
	Dir            string        `mapstructure:"dir"`             // bank root for the file source
	URL            string        `mapstructure:"url"`             // base URL for the http source
	Timeout        time.Duration `mapstructure:"timeout"`         // http fetch timeout
	ReloadSchedule string        `mapstructure:"reload_schedule"` // cron expression, empty disables reloads
}

// Quiz holds session defaults.
type Quiz struct {
	Languages       []string `mapstructure:"languages"`
	DefaultLanguage string   `mapstructure:"default_language"`
}

// DB contains database-related configuration parameters.
type DB struct {
	Driver          string        `mapstructure:"driver"`            // memory, postgres or sqlite
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Server configures the question API.
type Server struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Sessions configures in-memory session housekeeping.
type Sessions struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// RequireTelegram fails when the bot token is not set.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Load reads configuration from config files and environment variables.
// A .env file in the working directory is applied first when present.
// Extra paths are searched for config.yaml before ./config.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions.source", SourceFile)
	v.SetDefault("questions.dir", "data/questions")
	v.SetDefault("questions.url", "http://localhost:8080")
	v.SetDefault("questions.timeout", "10s")
	v.SetDefault("questions.reload_schedule", "")
	v.SetDefault("quiz.languages", []string{"en"})
	v.SetDefault("quiz.default_language", "en")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("sessions.idle_ttl", "2h")
	v.SetDefault("sessions.sweep_schedule", "@every 10m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.DB.Driver)
	}
	if c.DB.Driver != DriverMemory && c.DB.URL == "" {
		return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	switch c.Questions.Source {
	case SourceFile, SourceHTTP:
	default:
		return fmt.Errorf("unknown questions source %q", c.Questions.Source)
	}

	if len(c.Quiz.Languages) == 0 {
		c.Quiz.Languages = []string{c.Quiz.DefaultLanguage}
	}

	return nil
}
