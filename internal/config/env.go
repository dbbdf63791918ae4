package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables.
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".revjudge")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Default database and log paths live in the config directory
	cfg.Database.Path = filepath.Join(configDir, "revjudge.db")
	defaultLogPath := filepath.Join(configDir, "revjudge.log")

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// REVJUDGE_ENV_FILE overrides the .env location entirely
	envFilePath := getEnvString("REVJUDGE_ENV_FILE", "")
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(configFilePath); err != nil {
			// Fall back to current directory; ignore a missing file
			_ = godotenv.Load()
		}
	}

	// LLM Configuration
	cfg.DefaultLLMProvider = getEnvString("REVJUDGE_LLM_DEFAULT_PROVIDER", "openai")

	cfg.OpenAI = OpenAIConfig{
		APIKey:            getEnvString("REVJUDGE_OPENAI_API_KEY", getEnvString("OPENAI_API_KEY", "")),
		BaseURL:           getEnvString("REVJUDGE_OPENAI_BASE_URL", "https://api.openai.com"),
		Model:             getEnvString("REVJUDGE_OPENAI_MODEL", "gpt-4o"),
		Timeout:           getEnvDuration("REVJUDGE_OPENAI_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("REVJUDGE_OPENAI_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("REVJUDGE_OPENAI_MAX_TOKENS", 2048),
		Temperature:       getEnvFloat("REVJUDGE_OPENAI_TEMPERATURE", 0.1),
		RequestsPerMinute: getEnvInt("REVJUDGE_OPENAI_RPM", 60),
		BurstLimit:        getEnvInt("REVJUDGE_OPENAI_BURST", 5),
	}

	cfg.Claude = ClaudeConfig{
		APIKey:            getEnvString("REVJUDGE_CLAUDE_API_KEY", ""),
		BaseURL:           getEnvString("REVJUDGE_CLAUDE_BASE_URL", "https://api.anthropic.com"),
		APIVersion:        getEnvString("REVJUDGE_CLAUDE_API_VERSION", "2023-06-01"),
		Model:             getEnvString("REVJUDGE_CLAUDE_MODEL", "claude-3-7-sonnet-20250219"),
		Timeout:           getEnvDuration("REVJUDGE_CLAUDE_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("REVJUDGE_CLAUDE_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("REVJUDGE_CLAUDE_MAX_TOKENS", 2048),
		Temperature:       getEnvFloat("REVJUDGE_CLAUDE_TEMPERATURE", 0.1),
		RequestsPerMinute: getEnvInt("REVJUDGE_CLAUDE_RPM", 50),
		BurstLimit:        getEnvInt("REVJUDGE_CLAUDE_BURST", 5),
	}

	// Analysis Configuration. The prompt caps mirror the limits the scoring
	// prompts were calibrated with; raising them changes token costs only.
	cfg.Analysis = AnalysisConfig{
		InputDir:        getEnvString("REVJUDGE_INPUT_DIR", "exported_prs"),
		ResultsPath:     getEnvString("REVJUDGE_RESULTS_PATH", filepath.Join("results", "pr_review_analysis_results.json")),
		CommentCapChars: getEnvInt("REVJUDGE_COMMENT_CAP_CHARS", 1000),
		DiffCapChars:    getEnvInt("REVJUDGE_DIFF_CAP_CHARS", 500),
		ReviewCapChars:  getEnvInt("REVJUDGE_REVIEW_CAP_CHARS", 500),
		MaxFileReviews:  getEnvInt("REVJUDGE_MAX_FILE_REVIEWS", 3),
	}

	// Database Configuration
	cfg.Database = DatabaseConfig{
		Path:            getEnvString("REVJUDGE_DB_PATH", cfg.Database.Path),
		BusyTimeout:     getEnvInt("REVJUDGE_DB_BUSY_TIMEOUT", 5000),
		JournalMode:     getEnvString("REVJUDGE_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("REVJUDGE_DB_SYNCHRONOUS_MODE", "NORMAL"),
		CacheSize:       getEnvInt("REVJUDGE_DB_CACHE_SIZE", -64000), // ~64MB
		ForeignKeys:     getEnvBool("REVJUDGE_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("REVJUDGE_DB_CONN_MAX_LIFE", 5*time.Minute),
		QueryTimeout:    getEnvDuration("REVJUDGE_DB_QUERY_TIMEOUT", 30*time.Second),
	}

	// Logging Configuration
	cfg.Logging = LoggingConfig{
		Level:      getEnvString("REVJUDGE_LOG_LEVEL", "info"),
		Format:     getEnvString("REVJUDGE_LOG_FORMAT", "text"),
		Output:     getEnvString("REVJUDGE_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("REVJUDGE_LOG_ADD_SOURCE", true),
		TimeFormat: getEnvString("REVJUDGE_LOG_TIME_FORMAT", time.RFC3339),
	}

	return cfg, cfg.Validate()
}
