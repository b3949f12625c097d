package client_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourtionguo/codegraf/pkg/client"
)

// Example demonstrates triggering a batch run and reading back its stats.
func Example() {
	apiClient := client.NewAPIClient(
		"http://localhost:8080",
		client.WithTimeout(10*time.Minute),
		client.WithToken("your-api-token"),
		client.WithMaxRetries(3),
	)

	ctx := context.Background()

	if err := apiClient.Healthz(ctx); err != nil {
		log.Fatalf("codegraf-api is not healthy: %v", err)
	}

	record, err := apiClient.Index(ctx, &client.IndexRequest{
		Path:        "/repo",
		UseGit:      true,
		WorkerCount: 4,
	})
	if err != nil {
		log.Fatalf("index run failed: %v", err)
	}

	fmt.Printf("Indexed: %s\n", record.Path)
	if record.Stats != nil {
		fmt.Printf("Files parsed: %d\n", record.Stats.FilesParsed)
	}
}

// ExampleNewAPIClient demonstrates creating a client with various options.
func ExampleNewAPIClient() {
	client1 := client.NewAPIClient("http://localhost:8080")
	fmt.Printf("Client created with base URL: %s\n", "http://localhost:8080")

	client2 := client.NewAPIClient(
		"http://localhost:8080",
		client.WithToken("my-secret-token"),
	)
	_ = client2

	client3 := client.NewAPIClient(
		"http://localhost:8080",
		client.WithTimeout(30*time.Second),
		client.WithMaxRetries(5),
	)
	_ = client3

	_ = client1
	// Output: Client created with base URL: http://localhost:8080
}

// ExampleAPIClient_Index demonstrates triggering a batch run.
func ExampleAPIClient_Index() {
	apiClient := client.NewAPIClient("http://localhost:8080")
	ctx := context.Background()

	record, err := apiClient.Index(ctx, &client.IndexRequest{Path: "/repo"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Path: %s\n", record.Path)
}

// ExampleAPIClient_Stats demonstrates reading back the last run.
func ExampleAPIClient_Stats() {
	apiClient := client.NewAPIClient("http://localhost:8080")
	ctx := context.Background()

	record, ok, err := apiClient.Stats(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		fmt.Println("no runs yet")
		return
	}

	fmt.Printf("Last run path: %s\n", record.Path)
}

// ExampleAPIClient_Healthz demonstrates a liveness check.
func ExampleAPIClient_Healthz() {
	apiClient := client.NewAPIClient("http://localhost:8080")
	ctx := context.Background()

	if err := apiClient.Healthz(ctx); err != nil {
		fmt.Println("server is unhealthy")
		return
	}

	fmt.Println("server is healthy")
}
