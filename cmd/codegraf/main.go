package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "1.0.0"

func buildApp() *cli.App {
	return &cli.App{
		Name:    "codegraf",
		Usage:   "batch code-graph extraction for Kotlin, Java, and TypeScript/JavaScript",
		Version: version,
		Commands: []*cli.Command{
			createIndexCommand(),
			createStatsCommand(),
			createWatchCommand(),
		},
	}
}

func main() {
	if err := buildApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
