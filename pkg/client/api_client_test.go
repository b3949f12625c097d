package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourtionguo/codegraf/internal/pipeline"
)

func TestNewAPIClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		options []ClientOption
		want    *APIClient
	}{
		{
			name:    "default client",
			baseURL: "http://localhost:8080",
			options: nil,
			want:    &APIClient{baseURL: "http://localhost:8080", maxRetries: 3},
		},
		{
			name:    "client with token",
			baseURL: "http://localhost:8080",
			options: []ClientOption{WithToken("test-token")},
			want:    &APIClient{baseURL: "http://localhost:8080", token: "test-token", maxRetries: 3},
		},
		{
			name:    "client with max retries",
			baseURL: "http://localhost:8080",
			options: []ClientOption{WithMaxRetries(5)},
			want:    &APIClient{baseURL: "http://localhost:8080", maxRetries: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAPIClient(tt.baseURL, tt.options...)
			if got.baseURL != tt.want.baseURL {
				t.Errorf("baseURL = %v, want %v", got.baseURL, tt.want.baseURL)
			}
			if got.token != tt.want.token {
				t.Errorf("token = %v, want %v", got.token, tt.want.token)
			}
			if got.maxRetries != tt.want.maxRetries {
				t.Errorf("maxRetries = %v, want %v", got.maxRetries, tt.want.maxRetries)
			}
			if got.httpClient == nil {
				t.Error("httpClient should not be nil")
			}
		})
	}
}

func TestAPIClient_Index(t *testing.T) {
	tests := []struct {
		name           string
		request        *IndexRequest
		serverResponse RunRecord
		serverStatus   int
		wantErr        bool
	}{
		{
			name:    "successful index",
			request: &IndexRequest{Path: "/repo"},
			serverResponse: RunRecord{
				Path:  "/repo",
				Stats: &pipeline.Stats{FilesFound: 3, FilesParsed: 3},
			},
			serverStatus: http.StatusOK,
			wantErr:      false,
		},
		{
			name:         "server error",
			request:      &IndexRequest{Path: "/repo"},
			serverStatus: http.StatusInternalServerError,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/index" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method: %s", r.Method)
				}

				w.WriteHeader(tt.serverStatus)
				if tt.serverStatus == http.StatusOK {
					json.NewEncoder(w).Encode(tt.serverResponse)
				} else {
					json.NewEncoder(w).Encode(map[string]string{"error": "index run failed"})
				}
			}))
			defer server.Close()

			client := NewAPIClient(server.URL, WithMaxRetries(0))
			got, err := client.Index(context.Background(), tt.request)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Index() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if got.Path != tt.serverResponse.Path {
					t.Errorf("Path = %v, want %v", got.Path, tt.serverResponse.Path)
				}
				if got.Stats.FilesFound != tt.serverResponse.Stats.FilesFound {
					t.Errorf("FilesFound = %v, want %v", got.Stats.FilesFound, tt.serverResponse.Stats.FilesFound)
				}
			}
		})
	}
}

func TestAPIClient_Stats(t *testing.T) {
	t.Run("no runs yet", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"status": "no_runs_yet"})
		}))
		defer server.Close()

		client := NewAPIClient(server.URL)
		_, ok, err := client.Stats(context.Background())
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if ok {
			t.Error("expected ok = false when no runs have happened")
		}
	})

	t.Run("completed run", func(t *testing.T) {
		record := RunRecord{Path: "/repo", Stats: &pipeline.Stats{FilesFound: 2}}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/stats" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(record)
		}))
		defer server.Close()

		client := NewAPIClient(server.URL)
		got, ok, err := client.Stats(context.Background())
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if !ok {
			t.Fatal("expected ok = true for a completed run")
		}
		if got.Path != "/repo" || got.Stats.FilesFound != 2 {
			t.Errorf("unexpected record: %+v", got)
		}
	})
}

func TestAPIClient_Healthz(t *testing.T) {
	tests := []struct {
		name         string
		serverStatus int
		wantErr      bool
	}{
		{name: "healthy server", serverStatus: http.StatusOK, wantErr: false},
		{name: "unhealthy server", serverStatus: http.StatusServiceUnavailable, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/healthz" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.WriteHeader(tt.serverStatus)
			}))
			defer server.Close()

			err := NewAPIClient(server.URL).Healthz(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Healthz() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAPIClient_RetryLogic(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "temporary error"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RunRecord{Path: "/repo"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, WithMaxRetries(3))
	if _, err := client.Index(context.Background(), &IndexRequest{Path: "/repo"}); err != nil {
		t.Errorf("expected success after retries, got error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestAPIClient_NonRetryableStatusStopsImmediately(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "a run is already in progress"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, WithMaxRetries(3))
	_, err := client.Index(context.Background(), &IndexRequest{Path: "/repo"})
	if err == nil {
		t.Fatal("expected error for 409 response")
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt for a non-retryable status, got %d", attempts)
	}
}

func TestAPIClient_Authentication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RunRecord{})
	}))
	defer server.Close()

	t.Run("with token", func(t *testing.T) {
		client := NewAPIClient(server.URL, WithToken("test-token"), WithMaxRetries(0))
		if _, err := client.Index(context.Background(), &IndexRequest{Path: "/repo"}); err != nil {
			t.Errorf("expected success with token, got error: %v", err)
		}
	})

	t.Run("without token", func(t *testing.T) {
		client := NewAPIClient(server.URL, WithMaxRetries(0))
		if _, err := client.Index(context.Background(), &IndexRequest{Path: "/repo"}); err == nil {
			t.Error("expected error without token")
		}
	})
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "not found"}
	want := "API error (status 404): not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
}

func TestWithTimeout(t *testing.T) {
	client := NewAPIClient("http://localhost:8080", WithTimeout(10*time.Second))
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want %v", client.httpClient.Timeout, 10*time.Second)
	}
}
