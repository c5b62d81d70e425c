package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

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

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "25")
	defer os.Unsetenv("TEST_INT")
	assert.Equal(t, 25, getEnvInt("TEST_INT", 10))
	assert.Equal(t, 10, getEnvInt("TEST_INT_MISSING", 10))

	os.Setenv("TEST_INT_BAD", "not-a-number")
	defer os.Unsetenv("TEST_INT_BAD")
	assert.Equal(t, 10, getEnvInt("TEST_INT_BAD", 10))
}

func TestGetEnvBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "false")
	defer os.Unsetenv("TEST_BOOL")
	assert.False(t, getEnvBool("TEST_BOOL", true))
	assert.True(t, getEnvBool("TEST_BOOL_MISSING", true))
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

func TestLoad(t *testing.T) {
	setRequired := func() {
		os.Setenv("BOT_TOKEN", "token")
		os.Setenv("DB_PASSWORD", "secret")
	}
	clearAll := func() {
		for _, key := range []string{"BOT_TOKEN", "DB_PASSWORD", "STUDY_PAGE_SIZE", "STUDY_ONLY_DUE", "REMINDER_AT"} {
			os.Unsetenv(key)
		}
	}

	t.Run("missing bot token", func(t *testing.T) {
		clearAll()
		os.Setenv("DB_PASSWORD", "secret")
		defer clearAll()

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing db password", func(t *testing.T) {
		clearAll()
		os.Setenv("BOT_TOKEN", "token")
		defer clearAll()

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("study defaults", func(t *testing.T) {
		clearAll()
		setRequired()
		defer clearAll()

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, 10, cfg.Study.PageSize)
		assert.Equal(t, 1, cfg.Study.StartFrom)
		assert.True(t, cfg.Study.OnlyDue)
		assert.False(t, cfg.Study.IncludeSkipped)
		assert.Equal(t, "09:00", cfg.ReminderAt)
	})

	t.Run("invalid page size", func(t *testing.T) {
		clearAll()
		setRequired()
		os.Setenv("STUDY_PAGE_SIZE", "0")
		defer clearAll()

		_, err := Load()
		assert.Error(t, err)
	})
}
