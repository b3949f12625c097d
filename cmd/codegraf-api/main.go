package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/sink/postgres"
)

func main() {
	dsn := os.Getenv("CODEGRAF_DSN")
	if dsn == "" {
		log.Fatal("CODEGRAF_DSN environment variable must be set")
	}

	port := os.Getenv("CODEGRAF_API_PORT")
	if port == "" {
		port = "8090"
	}

	logger := logging.New(os.Getenv("CODEGRAF_VERBOSE") == "true")

	ctx := context.Background()
	s, err := postgres.Open(ctx, dsn, postgres.DefaultConfig())
	if err != nil {
		log.Fatalf("connecting to postgres: %v", err)
	}
	defer s.Close()

	server := NewServer(s, logger)
	r := server.SetupRouter()

	logger.InfoWithFields("starting codegraf-api", logging.Field{Key: "port", Value: port})
	if err := r.Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
