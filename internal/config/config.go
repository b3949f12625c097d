// Package config loads codegraf's runtime configuration from environment
// variables, in the teacher's style: one sub-struct per concern, typed
// getEnv* helpers with defaults, and a Validate pass run once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration object.
type Config struct {
	Database DatabaseConfig
	Indexer  IndexerConfig
	API      APIConfig
}

// DatabaseConfig configures the Postgres-backed reference GraphSink.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// IndexerConfig configures the pipeline orchestrator.
type IndexerConfig struct {
	BatchSize    int
	WorkerCount  int // 0 by default; internal/pipeline.Config treats 0 as sequential
	GraphName    string
	DomainConfig string // optional path to the domain configuration file
	SkipTests    bool
	UseGit       bool // discover files via go-git instead of a plain filesystem walk
}

// APIConfig holds settings for the ops-only HTTP surface. cmd/codegraf-api
// does not load it: that binary reads CODEGRAF_API_PORT itself and
// defaults to port 8090, not 8080.
type APIConfig struct {
	Host       string
	Port       int
	EnableAuth bool
	AuthTokens []string
}

// Load builds a Config from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Database: loadDatabaseConfig(),
		Indexer:  loadIndexerConfig(),
		API:      loadAPIConfig(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("CODEGRAF_DB_HOST", "localhost"),
		Port:            getEnvInt("CODEGRAF_DB_PORT", 5432),
		User:            getEnv("CODEGRAF_DB_USER", "codegraf"),
		Password:        getEnv("CODEGRAF_DB_PASSWORD", "codegraf"),
		Database:        getEnv("CODEGRAF_DB_NAME", "codegraf"),
		SSLMode:         getEnv("CODEGRAF_DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvInt("CODEGRAF_DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("CODEGRAF_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("CODEGRAF_DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadIndexerConfig() IndexerConfig {
	return IndexerConfig{
		BatchSize:    getEnvInt("CODEGRAF_BATCH_SIZE", 500),
		WorkerCount:  getEnvInt("CODEGRAF_WORKERS", 0),
		GraphName:    getEnv("CODEGRAF_GRAPH_NAME", "code_graph"),
		DomainConfig: getEnv("CODEGRAF_DOMAIN_CONFIG", ""),
		SkipTests:    getEnvBool("CODEGRAF_SKIP_TESTS", false),
		UseGit:       getEnvBool("CODEGRAF_USE_GIT", false),
	}
}

func loadAPIConfig() APIConfig {
	return APIConfig{
		Host:       getEnv("CODEGRAF_API_HOST", "0.0.0.0"),
		Port:       getEnvInt("CODEGRAF_API_PORT", 8080),
		EnableAuth: getEnvBool("CODEGRAF_API_ENABLE_AUTH", false),
		AuthTokens: getEnvStringSlice("CODEGRAF_API_TOKENS", nil),
	}
}

// Validate rejects out-of-range configuration before the pipeline starts.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database max open connections must be at least 1")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database max idle connections cannot exceed max open connections")
	}
	if c.Indexer.BatchSize < 1 {
		return fmt.Errorf("indexer batch size must be at least 1")
	}
	if c.Indexer.WorkerCount < 0 {
		return fmt.Errorf("indexer worker count cannot be negative")
	}
	if c.Indexer.GraphName == "" {
		return fmt.Errorf("indexer graph name cannot be empty")
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("API port must be between 1 and 65535")
	}
	if c.API.EnableAuth && len(c.API.AuthTokens) == 0 {
		return fmt.Errorf("authentication is enabled but no auth tokens are configured")
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Address returns the API server's bind address.
func (c *APIConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
