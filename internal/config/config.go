package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreAPI      = "api"
	StorePostgres = "postgres"
)

// Session stores
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Provider names accepted in TRANSLATORS and DICTIONARY
const (
	TranslatorGoogle    = "google"
	TranslatorDeepL     = "deepl"
	DictionaryCambridge = "cambridge"
	DictionaryFreeDict  = "freedict"
)

// Config holds all application configuration
type Config struct {
	BotToken     string
	Store        StoreConfig
	Database     DatabaseConfig
	Providers    ProviderConfig
	Session      SessionConfig
	Reminder     ReminderConfig
	MetricsAddr  string
	WelcomeImage string
	QuizEndImage string
}

// StoreConfig selects and configures the vocabulary store
type StoreConfig struct {
	Driver  string
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ProviderConfig lists translation and dictionary providers
type ProviderConfig struct {
	Translators []string
	DeepLAPIKey string
	Dictionary  string
	Timeout     time.Duration
}

// SessionConfig selects where sessions live
type SessionConfig struct {
	Store         string
	RedisAddr     string
	RedisPassword string
	TTL           time.Duration
}

// ReminderConfig schedules the daily quiz reminder (UTC)
type ReminderConfig struct {
	Enabled bool
	Hour    int
	Minute  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreAPI),
			APIURL: getEnv("STORE_API_URL", "http://localhost:5000/api/v1"),
			APIKey: os.Getenv("STORE_API_KEY"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordbot"),
			User:     getEnv("DB_USER", "wordbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Providers: ProviderConfig{
			Translators: splitList(getEnv("TRANSLATORS", "google,deepl")),
			DeepLAPIKey: os.Getenv("DEEPL_API_KEY"),
			Dictionary:  strings.ToLower(getEnv("DICTIONARY", DictionaryCambridge)),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", SessionMemory),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
		},
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		WelcomeImage: getEnv("WELCOME_IMAGE", "welcome.jpg"),
		QuizEndImage: getEnv("QUIZ_END_IMAGE", "end_test.jpg"),
	}

	var err error
	if cfg.Providers.Timeout, err = getDuration("PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Store.Timeout, err = getDuration("STORE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Reminder, err = getReminder(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	switch c.Store.Driver {
	case StoreAPI:
		if c.Store.APIKey == "" {
			return fmt.Errorf("STORE_API_KEY is required")
		}
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreAPI, StorePostgres, c.Store.Driver)
	}

	if len(c.Providers.Translators) == 0 {
		return fmt.Errorf("TRANSLATORS is required")
	}
	for _, name := range c.Providers.Translators {
		if name != TranslatorGoogle && name != TranslatorDeepL {
			return fmt.Errorf("TRANSLATORS: unknown translator %q", name)
		}
	}

	if c.Providers.Dictionary != DictionaryCambridge && c.Providers.Dictionary != DictionaryFreeDict {
		return fmt.Errorf("DICTIONARY must be %q or %q, got %q", DictionaryCambridge, DictionaryFreeDict, c.Providers.Dictionary)
	}

	if c.Session.Store != SessionMemory && c.Session.Store != SessionRedis {
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionMemory, SessionRedis, c.Session.Store)
	}

	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}

func getReminder() (ReminderConfig, error) {
	var rc ReminderConfig

	if value := os.Getenv("REMINDER_ENABLED"); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return rc, fmt.Errorf("REMINDER_ENABLED must be a boolean, got %q", value)
		}
		rc.Enabled = enabled
	}

	value := getEnv("REMINDER_TIME", "20:00")
	at, err := time.Parse("15:04", value)
	if err != nil {
		return rc, fmt.Errorf("REMINDER_TIME must be HH:MM, got %q", value)
	}
	rc.Hour, rc.Minute = at.Hour(), at.Minute()
	return rc, nil
}

// splitList parses a comma separated, lower-cased list
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
