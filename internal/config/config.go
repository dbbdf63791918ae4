// Package config provides application configuration loaded from the environment
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// Global configuration instance
	globalConfig *Config
	configMutex  sync.RWMutex
)

// Get returns the global configuration instance.
// Returns an error if the configuration has not been initialized.
func Get() (*Config, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	return globalConfig, nil
}

// Set sets the global configuration instance
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
}

// Config represents the complete application configuration
type Config struct {
	DefaultLLMProvider string // Which provider to use by default (openai or claude)
	OpenAI             OpenAIConfig
	Claude             ClaudeConfig
	Analysis           AnalysisConfig
	Database           DatabaseConfig
	Logging            LoggingConfig
	configDir          string // Internal: Directory where config was loaded from
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	// Authentication and connection
	APIKey  string // OpenAI API key
	BaseURL string // API base URL

	// Model settings
	Model string // Chat model to use

	// Request settings
	Timeout    time.Duration // Request timeout
	MaxRetries int           // Maximum number of retries on failure

	// Generation parameters
	MaxTokens   int     // Max tokens to generate
	Temperature float64 // Sampling temperature

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// ClaudeConfig holds Anthropic Claude API configuration
type ClaudeConfig struct {
	// Authentication and connection
	APIKey     string // Claude API key
	BaseURL    string // API base URL
	APIVersion string // API version header value

	// Model settings
	Model string // Claude model to use

	// Request settings
	Timeout    time.Duration // Request timeout
	MaxRetries int           // Maximum number of retries on failure

	// Generation parameters
	MaxTokens   int     // Max tokens to generate
	Temperature float64 // Sampling temperature

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// AnalysisConfig represents comparison-engine configuration
type AnalysisConfig struct {
	InputDir        string // Directory containing exported PR JSON files
	ResultsPath     string // Path where the detailed results JSON is written
	CommentCapChars int    // Per-side comment text cap in content-overlap prompts
	DiffCapChars    int    // Diff context cap in content-overlap prompts
	ReviewCapChars  int    // Per-file AI review cap in PR-assessment prompts
	MaxFileReviews  int    // Max per-file AI reviews included in a PR assessment
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Path            string        // Path to the SQLite database file
	JournalMode     string        // Journal mode (WAL recommended)
	SynchronousMode string        // Synchronous mode
	BusyTimeout     int           // Busy timeout in milliseconds
	CacheSize       int           // Cache size in KiB
	ForeignKeys     bool          // Whether to enforce foreign key constraints
	ConnMaxLife     time.Duration // Maximum connection lifetime
	QueryTimeout    time.Duration // Query timeout
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a new empty Config
func New() *Config {
	return &Config{
		DefaultLLMProvider: "",
		OpenAI:             OpenAIConfig{},
		Claude:             ClaudeConfig{},
		Analysis:           AnalysisConfig{},
		Database:           DatabaseConfig{},
		Logging:            LoggingConfig{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return fmt.Errorf("LLM config: %w", err)
	}

	if err := c.validateAnalysis(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.validateDatabase(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validateLLM() error {
	if c.DefaultLLMProvider == "" {
		return fmt.Errorf("default provider cannot be empty")
	}

	switch c.DefaultLLMProvider {
	case "openai":
		if c.OpenAI.Timeout <= 0 {
			return fmt.Errorf("OpenAI timeout must be positive")
		}
		if c.OpenAI.MaxRetries < 0 {
			return fmt.Errorf("OpenAI max_retries cannot be negative")
		}
	case "claude":
		if c.Claude.Timeout <= 0 {
			return fmt.Errorf("Claude timeout must be positive")
		}
		if c.Claude.MaxRetries < 0 {
			return fmt.Errorf("Claude max_retries cannot be negative")
		}
	default:
		return fmt.Errorf("unknown provider: %s", c.DefaultLLMProvider)
	}

	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.InputDir == "" {
		return fmt.Errorf("input directory cannot be empty")
	}

	if c.Analysis.CommentCapChars <= 0 {
		return fmt.Errorf("comment cap must be positive")
	}

	if c.Analysis.DiffCapChars <= 0 {
		return fmt.Errorf("diff cap must be positive")
	}

	if c.Analysis.ReviewCapChars <= 0 {
		return fmt.Errorf("review cap must be positive")
	}

	if c.Analysis.MaxFileReviews <= 0 {
		return fmt.Errorf("max file reviews must be positive")
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	// Create the directory if it doesn't exist
	dir := filepath.Dir(c.Database.Path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for database: %w", err)
		}
	}

	if err := checkDirectoryWritable(dir); err != nil {
		return fmt.Errorf("database directory: %w", err)
	}

	if c.Database.BusyTimeout <= 0 {
		return fmt.Errorf("busy timeout must be positive")
	}

	if c.Database.ConnMaxLife <= 0 {
		return fmt.Errorf("connection max life must be positive")
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("query timeout must be positive")
	}

	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// checkDirectoryWritable verifies a directory exists and is writable
func checkDirectoryWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe := filepath.Join(dir, ".write_probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	f.Close()
	os.Remove(probe)

	return nil
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvFloat returns a float64 from the environment variable
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
