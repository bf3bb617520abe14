package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`                 // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`                   // Telegram API token loaded from environment, empty disables the bot
	DataDir          string    `mapstructure:"data_dir"`            // directory with one question document per slide
	LegacyPath       string    `mapstructure:"legacy_path"`         // single legacy question document
	Extensions       []string  `mapstructure:"document_extensions"` // recognized document extensions
	HTTP             HTTP      `mapstructure:"http"`                // HTTP API section
	Quiz             Quiz      `mapstructure:"quiz"`                // Telegram quiz section
	DB               DB        `mapstructure:"database"`            // database configuration section
}

// HTTP configures the JSON API.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	StatsClients    int           `mapstructure:"stats_clients"` // web clients whose score is remembered
}

// Quiz configures Telegram quiz sessions.
type Quiz struct {
	Length     int           `mapstructure:"length"`      // questions per session
	SessionTTL time.Duration `mapstructure:"session_ttl"` // active sessions older than this are abandoned
	SweepSpec  string        `mapstructure:"sweep_spec"`  // cron spec of the stale-session sweeper
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// TelegramEnabled reports whether the bot should run.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramAPIToken != ""
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("data_dir", "data")
	v.SetDefault("legacy_path", "questions.md")
	v.SetDefault("document_extensions", []string{".md"})
	v.SetDefault("http.addr", ":5000")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("http.stats_clients", 10000)
	v.SetDefault("quiz.length", 10)
	v.SetDefault("quiz.session_ttl", "24h")
	v.SetDefault("quiz.sweep_spec", "0 * * * *")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	// Quiz sessions live in PostgreSQL, so the bot needs a database.
	if cfg.TelegramEnabled() && cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
