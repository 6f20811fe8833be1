package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"BOT_TOKEN", "STORE_DRIVER", "STORE_API_URL", "STORE_API_KEY", "STORE_TIMEOUT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"TRANSLATORS", "DEEPL_API_KEY", "DICTIONARY", "PROVIDER_TIMEOUT",
	"SESSION_STORE", "REDIS_ADDR", "REDIS_PASSWORD", "SESSION_TTL",
	"REMINDER_ENABLED", "REMINDER_TIME", "METRICS_ADDR", "WELCOME_IMAGE", "QUIZ_END_IMAGE",
}

// setEnv blanks every config key, then applies env. t.Setenv restores the
// original values when the test ends.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"BOT_TOKEN":     "test_token",
		"STORE_API_KEY": "test_key",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, StoreConfig{
		Driver:  StoreAPI,
		APIURL:  "http://localhost:5000/api/v1",
		APIKey:  "test_key",
		Timeout: 15 * time.Second,
	}, cfg.Store)
	assert.Equal(t, []string{"google", "deepl"}, cfg.Providers.Translators)
	assert.Equal(t, DictionaryCambridge, cfg.Providers.Dictionary)
	assert.Equal(t, 10*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, SessionConfig{Store: SessionMemory, RedisAddr: "localhost:6379", TTL: 24 * time.Hour}, cfg.Session)
	assert.Equal(t, ReminderConfig{Enabled: false, Hour: 20, Minute: 0}, cfg.Reminder)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "wordbot", cfg.Database.Name)
	assert.Equal(t, "welcome.jpg", cfg.WelcomeImage)
	assert.Equal(t, "end_test.jpg", cfg.QuizEndImage)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"BOT_TOKEN":        "test_token",
		"STORE_DRIVER":     "postgres",
		"DB_PASSWORD":      "test_db_password",
		"TRANSLATORS":      " DeepL , google,",
		"DEEPL_API_KEY":    "abc:fx",
		"DICTIONARY":       "FreeDict",
		"PROVIDER_TIMEOUT": "3s",
		"SESSION_STORE":    "redis",
		"REDIS_ADDR":       "redis:6379",
		"SESSION_TTL":      "2h",
		"REMINDER_ENABLED": "true",
		"REMINDER_TIME":    "07:45",
		"METRICS_ADDR":     ":9090",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, []string{"deepl", "google"}, cfg.Providers.Translators)
	assert.Equal(t, "abc:fx", cfg.Providers.DeepLAPIKey)
	assert.Equal(t, DictionaryFreeDict, cfg.Providers.Dictionary)
	assert.Equal(t, 3*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, SessionRedis, cfg.Session.Store)
	assert.Equal(t, "redis:6379", cfg.Session.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, ReminderConfig{Enabled: true, Hour: 7, Minute: 45}, cfg.Reminder)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
	}{
		{
			name:        "missing bot token",
			env:         map[string]string{"STORE_API_KEY": "k"},
			errContains: "BOT_TOKEN",
		},
		{
			name:        "missing api key",
			env:         map[string]string{"BOT_TOKEN": "t"},
			errContains: "STORE_API_KEY",
		},
		{
			name:        "missing db password",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_DRIVER": "postgres"},
			errContains: "DB_PASSWORD",
		},
		{
			name:        "unknown store driver",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_DRIVER": "mongo"},
			errContains: "STORE_DRIVER",
		},
		{
			name:        "unknown translator",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "TRANSLATORS": "google,yandex"},
			errContains: "yandex",
		},
		{
			name:        "empty translator list",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "TRANSLATORS": " , "},
			errContains: "TRANSLATORS",
		},
		{
			name:        "unknown dictionary",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "DICTIONARY": "oxford"},
			errContains: "DICTIONARY",
		},
		{
			name:        "unknown session store",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "SESSION_STORE": "disk"},
			errContains: "SESSION_STORE",
		},
		{
			name:        "bad timeout",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "PROVIDER_TIMEOUT": "soon"},
			errContains: "PROVIDER_TIMEOUT",
		},
		{
			name:        "negative ttl",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "SESSION_TTL": "-1h"},
			errContains: "SESSION_TTL",
		},
		{
			name:        "bad reminder flag",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "REMINDER_ENABLED": "sometimes"},
			errContains: "REMINDER_ENABLED",
		},
		{
			name:        "bad reminder time",
			env:         map[string]string{"BOT_TOKEN": "t", "STORE_API_KEY": "k", "REMINDER_TIME": "25:00"},
			errContains: "REMINDER_TIME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
