package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Env  string
	Port int
	// BodyLimit uses echo's size notation, e.g. "1M" or "512K".
	BodyLimit      string
	AllowedOrigins []string
	LogLevel       string

	ShutdownTimeout time.Duration

	Store StoreConfig
	Notes NotesConfig

	RateLimit RateLimitConfig

	SSM SSMConfig
}

type StoreConfig struct {
	Driver string
	DBPath string
}

type NotesConfig struct {
	TitleMaxLength int
}

// RateLimitConfig disables rate limiting when RPS <= 0.
type RateLimitConfig struct {
	RPS   int
	Burst int
}

type SSMConfig struct {
	Region        string
	ParameterPath string
}

// Load exports the environment (from AWS SSM in production, from envFile
// otherwise) and reads the configuration out of it.
func Load(ctx context.Context, envFile string) (*Config, error) {
	if os.Getenv("GO_ENV") == EnvProduction {
		err := loadProdEnv(ctx, getEnv("AWS_REGION", "us-east-2"), getEnv("SSM_PARAMETER_PATH", "/notesapi/prod/"))
		if err != nil {
			return nil, err
		}
	} else if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration from the current environment, with defaults.
func FromEnv() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Env:             v.GetString("GO_ENV"),
		Port:            v.GetInt("PORT"),
		BodyLimit:       v.GetString("BODY_LIMIT"),
		AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
			DBPath: v.GetString("DB_PATH"),
		},
		Notes: NotesConfig{
			TitleMaxLength: v.GetInt("NOTES_TITLE_MAX_LENGTH"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetInt("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		SSM: SSMConfig{
			Region:        v.GetString("AWS_REGION"),
			ParameterPath: v.GetString("SSM_PARAMETER_PATH"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate returns every configuration problem joined together, or nil.
func (c *Config) Validate() error {
	var errs []error

	if c.Env != EnvDevelopment && c.Env != EnvProduction && c.Env != EnvTest {
		errs = append(errs, fmt.Errorf("GO_ENV must be '%s', '%s' or '%s', got '%s'",
			EnvDevelopment, EnvProduction, EnvTest, c.Env))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be in range [1 - 65535], got %d", c.Port))
	}
	if c.BodyLimit == "" {
		errs = append(errs, errors.New("BODY_LIMIT is required"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, off, got '%s'", c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required when STORE_DRIVER is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be '%s' or '%s', got '%s'",
			StoreSQLite, StoreMemory, c.Store.Driver))
	}

	if c.Notes.TitleMaxLength <= 0 {
		errs = append(errs, errors.New("NOTES_TITLE_MAX_LENGTH must be positive"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLvl maps LOG_LEVEL to the gommon level; unknown values map to INFO.
func (c *Config) LogLvl() log.Lvl {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return log.INFO
}

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GO_ENV", EnvDevelopment)
	v.SetDefault("PORT", 7070)
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("DB_PATH", "database.db")
	v.SetDefault("NOTES_TITLE_MAX_LENGTH", 50)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("AWS_REGION", "us-east-2")
	v.SetDefault("SSM_PARAMETER_PATH", "/notesapi/prod/")
}

// loadDotEnv exports envFile into the process environment. Variables that are
// already set win over the file, and a missing file is not an error.
func loadDotEnv(envFile string) error {
	err := godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("env file %s not found, using process environment only", envFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("godotenv.Load(%s): %w", envFile, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
