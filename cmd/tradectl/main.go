// Command tradectl inspects the configured ledger store and market data
// without going through the HTTP API.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"papertrade/internal/config"
	"papertrade/internal/logger"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()

	cfg, err := config.Load()
	if err == nil {
		logger.Init(cfg.Env, cfg.LogLevel)
	}
	defer logger.Sync()

	os.Exit(int(commander.Execute(context.Background())))
}
