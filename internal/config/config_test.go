package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue string
		expected     string
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: "default",
			expected:     "default",
		},
		{
			name:         "env set, return env value",
			envValue:     "custom",
			defaultValue: "default",
			expected:     "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_STRING_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvString(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		expected     int
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 100,
			expected:     100,
		},
		{
			name:         "env set to valid int, return int value",
			envValue:     "200",
			defaultValue: 100,
			expected:     200,
		},
		{
			name:         "env set to invalid int, return default",
			envValue:     "not_an_int",
			defaultValue: 100,
			expected:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_INT_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvInt(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue float64
		expected     float64
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 0.2,
			expected:     0.2,
		},
		{
			name:         "env set to 0.1, return 0.1",
			envValue:     "0.1",
			defaultValue: 0.2,
			expected:     0.1,
		},
		{
			name:         "env set to invalid value, return default",
			envValue:     "invalid",
			defaultValue: 0.2,
			expected:     0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_FLOAT_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvFloat(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result, "getEnvFloat should preserve precision")
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue time.Duration
		expected     time.Duration
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 1 * time.Second,
			expected:     1 * time.Second,
		},
		{
			name:         "env set to valid duration, return duration value",
			envValue:     "5s",
			defaultValue: 1 * time.Second,
			expected:     5 * time.Second,
		},
		{
			name:         "env set to invalid duration, return default",
			envValue:     "not_a_duration",
			defaultValue: 1 * time.Second,
			expected:     1 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_DURATION_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvDuration(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		expected     bool
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: true,
			expected:     true,
		},
		{
			name:         "env set to true, return true",
			envValue:     "true",
			defaultValue: false,
			expected:     true,
		},
		{
			name:         "env set to false, return false",
			envValue:     "false",
			defaultValue: true,
			expected:     false,
		},
		{
			name:         "env set to invalid bool, return default",
			envValue:     "not_a_bool",
			defaultValue: true,
			expected:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvBool(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Empty(t, cfg.DefaultLLMProvider)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.Claude.APIKey)
	assert.Empty(t, cfg.Database.Path)
	assert.Zero(t, cfg.Analysis.CommentCapChars)
	assert.Empty(t, cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	vars := []string{
		"REVJUDGE_LLM_DEFAULT_PROVIDER", "REVJUDGE_OPENAI_MODEL",
		"REVJUDGE_OPENAI_TEMPERATURE", "REVJUDGE_INPUT_DIR",
		"REVJUDGE_COMMENT_CAP_CHARS", "REVJUDGE_LOG_LEVEL",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}

	configDir := t.TempDir()
	cfg, err := LoadFromEnv(configDir, "")
	assert.NoError(t, err)

	assert.Equal(t, "openai", cfg.DefaultLLMProvider)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 0.1, cfg.OpenAI.Temperature, "temperature precision should be exactly 0.1")
	assert.Equal(t, 60*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, 3, cfg.OpenAI.MaxRetries)

	assert.Equal(t, "exported_prs", cfg.Analysis.InputDir)
	assert.Equal(t, 1000, cfg.Analysis.CommentCapChars)
	assert.Equal(t, 500, cfg.Analysis.DiffCapChars)
	assert.Equal(t, 500, cfg.Analysis.ReviewCapChars)
	assert.Equal(t, 3, cfg.Analysis.MaxFileReviews)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "WAL", cfg.Database.JournalMode)
}

func TestSetGet(t *testing.T) {
	Set(nil)

	_, err := Get()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	testCfg := New()
	testCfg.OpenAI.Temperature = 0.5
	Set(testCfg)

	cfg, err := Get()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, 0.5, cfg.OpenAI.Temperature)
}

func TestValidate(t *testing.T) {
	configDir := t.TempDir()
	cfg, err := LoadFromEnv(configDir, "")
	assert.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	// Empty provider
	invalidLLM := New()
	err = invalidLLM.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LLM config")

	// Unknown provider
	unknownProvider := New()
	unknownProvider.DefaultLLMProvider = "ollama"
	err = unknownProvider.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")

	// Invalid analysis config
	invalidAnalysis := New()
	invalidAnalysis.DefaultLLMProvider = "openai"
	invalidAnalysis.OpenAI.Timeout = time.Minute
	err = invalidAnalysis.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis config")

	// Invalid logging config
	invalidLogging := New()
	invalidLogging.DefaultLLMProvider = "openai"
	invalidLogging.OpenAI.Timeout = time.Minute
	invalidLogging.Analysis = cfg.Analysis
	invalidLogging.Database = cfg.Database
	invalidLogging.Logging.Level = "invalid"
	invalidLogging.Logging.Format = "text"
	err = invalidLogging.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging config")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level  string
		expect slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", slog.Level(9999)},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expect, ParseLogLevel(tt.level))
		})
	}
}

func TestCheckDirectoryWritable(t *testing.T) {
	tempDir := t.TempDir()

	assert.NoError(t, checkDirectoryWritable(tempDir))
	assert.Error(t, checkDirectoryWritable("/path/that/does/not/exist"))
}
