package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/pipeline"
	"github.com/yourtionguo/codegraf/internal/sink/memory"
)

// createStatsCommand runs the full pipeline against an in-memory sink and
// prints only the resulting Stats record, for CI checks and quick
// resolution-rate sanity checks without needing a graph store.
func createStatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "run the pipeline and print statistics without persisting the graph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "path to the repository to analyze",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "domains",
				Usage: "path to a domain configuration file",
			},
			&cli.BoolFlag{
				Name:  "use-git",
				Usage: "discover only files tracked in the repository's HEAD commit",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "extract-phase worker count",
				Value: runtime.NumCPU(),
			},
		},
		Action: func(c *cli.Context) error {
			cfg := pipeline.DefaultConfig(c.String("path"))
			cfg.DomainConfigPath = c.String("domains")
			cfg.WorkerCount = c.Int("workers")
			cfg.Discovery.UseGit = c.Bool("use-git")

			s := memory.New()
			defer s.Close()

			orch := pipeline.New(cfg, s, logging.NewSilent())
			stats, err := orch.Run(context.Background())
			if err != nil {
				return fmt.Errorf("stats run failed: %w", err)
			}
			return printStats(stats)
		},
	}
}
