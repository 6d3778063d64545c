package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tareas/internal/cli"
	"github.com/idilsaglam/tareas/internal/config"
	"github.com/idilsaglam/tareas/internal/logging"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("tareas", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, args, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	logger.Debug("config", "file", cfg.File, "theme", cfg.Theme)

	os.Exit(cli.Run(args, cli.Options{
		File:   cfg.File,
		Theme:  cfg.Theme,
		Logger: logger,
	}))
}
