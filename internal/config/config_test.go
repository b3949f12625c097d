package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	originalEnv := saveEnv()
	defer restoreEnv(originalEnv)

	t.Run("defaults", func(t *testing.T) {
		clearEnv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.Database.Host != "localhost" {
			t.Errorf("expected database host 'localhost', got %q", cfg.Database.Host)
		}
		if cfg.Database.Port != 5432 {
			t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
		}
		if cfg.API.Port != 8080 {
			t.Errorf("expected API port 8080, got %d", cfg.API.Port)
		}
		if cfg.API.EnableAuth {
			t.Error("expected API auth disabled by default")
		}
		if cfg.Indexer.BatchSize != 500 {
			t.Errorf("expected indexer batch size 500, got %d", cfg.Indexer.BatchSize)
		}
		if cfg.Indexer.WorkerCount != 0 {
			t.Errorf("expected indexer worker count 0 (auto), got %d", cfg.Indexer.WorkerCount)
		}
		if cfg.Indexer.GraphName != "code_graph" {
			t.Errorf("expected graph name 'code_graph', got %q", cfg.Indexer.GraphName)
		}
	})

	t.Run("custom_values", func(t *testing.T) {
		clearEnv()
		os.Setenv("CODEGRAF_DB_HOST", "db.example.com")
		os.Setenv("CODEGRAF_DB_PORT", "5433")
		os.Setenv("CODEGRAF_API_PORT", "9090")
		os.Setenv("CODEGRAF_API_ENABLE_AUTH", "true")
		os.Setenv("CODEGRAF_API_TOKENS", "token1,token2,token3")
		os.Setenv("CODEGRAF_BATCH_SIZE", "200")
		os.Setenv("CODEGRAF_WORKERS", "8")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.Database.Host != "db.example.com" {
			t.Errorf("expected database host 'db.example.com', got %q", cfg.Database.Host)
		}
		if cfg.Database.Port != 5433 {
			t.Errorf("expected database port 5433, got %d", cfg.Database.Port)
		}
		if cfg.API.Port != 9090 {
			t.Errorf("expected API port 9090, got %d", cfg.API.Port)
		}
		if !cfg.API.EnableAuth {
			t.Error("expected API auth enabled")
		}
		if len(cfg.API.AuthTokens) != 3 {
			t.Errorf("expected 3 auth tokens, got %d", len(cfg.API.AuthTokens))
		}
		if cfg.Indexer.BatchSize != 200 {
			t.Errorf("expected indexer batch size 200, got %d", cfg.Indexer.BatchSize)
		}
		if cfg.Indexer.WorkerCount != 8 {
			t.Errorf("expected indexer worker count 8, got %d", cfg.Indexer.WorkerCount)
		}
	})
}

func TestDatabaseConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr bool
	}{
		{"valid", DatabaseConfig{Host: "localhost", Port: 5432, MaxOpenConns: 10, MaxIdleConns: 5}, false},
		{"empty_host", DatabaseConfig{Host: "", Port: 5432, MaxOpenConns: 10}, true},
		{"invalid_port", DatabaseConfig{Host: "localhost", Port: 0, MaxOpenConns: 10}, true},
		{"idle_exceeds_max", DatabaseConfig{Host: "localhost", Port: 5432, MaxOpenConns: 5, MaxIdleConns: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Database = tt.db
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAPIConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		api     APIConfig
		wantErr bool
	}{
		{"valid", APIConfig{Port: 8080}, false},
		{"valid_with_auth", APIConfig{Port: 8080, EnableAuth: true, AuthTokens: []string{"t1"}}, false},
		{"invalid_port", APIConfig{Port: 0}, true},
		{"auth_without_tokens", APIConfig{Port: 8080, EnableAuth: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.API = tt.api
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIndexerConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		idx     IndexerConfig
		wantErr bool
	}{
		{"valid", IndexerConfig{BatchSize: 100, GraphName: "g"}, false},
		{"invalid_batch_size", IndexerConfig{BatchSize: 0, GraphName: "g"}, true},
		{"empty_graph_name", IndexerConfig{BatchSize: 100, GraphName: ""}, true},
		{"negative_workers", IndexerConfig{BatchSize: 100, GraphName: "g", WorkerCount: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Indexer = tt.idx
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{Host: "localhost", Port: 5432, User: "testuser", Password: "testpass", Database: "testdb", SSLMode: "disable"}
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if got := db.ConnectionString(); got != expected {
		t.Errorf("ConnectionString() = %s, want %s", got, expected)
	}
}

func TestAPIAddress(t *testing.T) {
	api := APIConfig{Host: "0.0.0.0", Port: 8080}
	if got := api.Address(); got != "0.0.0.0:8080" {
		t.Errorf("Address() = %s, want 0.0.0.0:8080", got)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	originalEnv := saveEnv()
	defer restoreEnv(originalEnv)

	t.Run("getEnvInt_invalid_falls_back", func(t *testing.T) {
		clearEnv()
		os.Setenv("TEST_INT", "not-a-number")
		if got := getEnvInt("TEST_INT", 10); got != 10 {
			t.Errorf("getEnvInt() with invalid value = %d, want 10", got)
		}
	})

	t.Run("getEnvDuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("TEST_DURATION", "5s")
		if got := getEnvDuration("TEST_DURATION", 0); got != 5*time.Second {
			t.Errorf("getEnvDuration() = %v, want 5s", got)
		}
	})

	t.Run("getEnvStringSlice_trims_spaces", func(t *testing.T) {
		clearEnv()
		os.Setenv("TEST_SLICE", " a , b , c ")
		got := getEnvStringSlice("TEST_SLICE", nil)
		if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
			t.Errorf("getEnvStringSlice() = %v, want [a b c]", got)
		}
	})
}

func baseConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Port: 5432, MaxOpenConns: 10},
		API:      APIConfig{Port: 8080},
		Indexer:  IndexerConfig{BatchSize: 100, GraphName: "test_graph"},
	}
}

func saveEnv() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		if pair := strings.SplitN(e, "=", 2); len(pair) == 2 {
			env[pair[0]] = pair[1]
		}
	}
	return env
}

func restoreEnv(env map[string]string) {
	os.Clearenv()
	for k, v := range env {
		os.Setenv(k, v)
	}
}

func clearEnv() {
	vars := []string{
		"CODEGRAF_DB_HOST", "CODEGRAF_DB_PORT", "CODEGRAF_DB_USER", "CODEGRAF_DB_PASSWORD",
		"CODEGRAF_DB_NAME", "CODEGRAF_DB_SSLMODE", "CODEGRAF_DB_MAX_OPEN_CONNS", "CODEGRAF_DB_MAX_IDLE_CONNS",
		"CODEGRAF_DB_CONN_MAX_LIFETIME", "CODEGRAF_API_HOST", "CODEGRAF_API_PORT", "CODEGRAF_API_ENABLE_AUTH",
		"CODEGRAF_API_TOKENS", "CODEGRAF_BATCH_SIZE", "CODEGRAF_WORKERS", "CODEGRAF_GRAPH_NAME",
		"CODEGRAF_DOMAIN_CONFIG", "CODEGRAF_SKIP_TESTS", "CODEGRAF_USE_GIT",
		"TEST_INT", "TEST_DURATION", "TEST_SLICE",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
