package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todo/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group ls output by pending/done")
	configPath := flag.String("config", "", "config file (default ~/.config/tada/config.toml)")
	storage := flag.String("storage", "", "storage backend: json, sqlite or memory")
	path := flag.String("path", "", "data directory (json) or database file (sqlite)")
	theme := flag.String("theme", "", "theme: classic, neon or mono")
	filter := flag.String("filter", "", "initial filter: all, active or completed")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:    *groupPending,
		Config:   *configPath,
		Storage:  *storage,
		Path:     *path,
		Theme:    *theme,
		Filter:   *filter,
		LogLevel: *logLevel,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
