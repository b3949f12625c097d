package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/pipeline"
	"github.com/yourtionguo/codegraf/internal/sink"
	"github.com/yourtionguo/codegraf/internal/sink/memory"
	"github.com/yourtionguo/codegraf/internal/sink/postgres"
	"github.com/yourtionguo/codegraf/internal/watch"
)

func createWatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "re-run the pipeline on every source change under --path",
		Description: `Runs the full batch pipeline once, then again every time a relevant
   source file under --path changes, debounced so a burst of saves
   collapses into a single run. This is not incremental indexing — each
   run re-discovers, re-extracts, and re-resolves the whole tree.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "path to the repository to watch",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "postgres DSN (can also use CODEGRAF_DSN env var); omit for --dry-run",
			},
			&cli.StringFlag{
				Name:  "domains",
				Usage: "path to a domain configuration file",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "write to an in-memory sink instead of postgres",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "extract-phase worker count",
				Value: runtime.NumCPU(),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable verbose logging",
			},
		},
		Action: executeWatchCommand,
	}
}

func executeWatchCommand(c *cli.Context) error {
	logger := logging.New(c.Bool("verbose"))

	cfg := pipeline.DefaultConfig(c.String("path"))
	cfg.DomainConfigPath = c.String("domains")
	cfg.WorkerCount = c.Int("workers")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var s sink.GraphSink
	if c.Bool("dry-run") {
		s = memory.New()
	} else {
		dsn := c.String("dsn")
		if dsn == "" {
			dsn = os.Getenv("CODEGRAF_DSN")
		}
		if dsn == "" {
			return fmt.Errorf("postgres DSN must be specified via --dsn flag, CODEGRAF_DSN environment variable, or --dry-run")
		}
		opened, err := postgres.Open(ctx, dsn, postgres.DefaultConfig())
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		s = opened
	}
	defer s.Close()

	orch := pipeline.New(cfg, s, logger)
	w := watch.New(c.String("path"), orch.Run, logger)
	return w.Start(ctx)
}
