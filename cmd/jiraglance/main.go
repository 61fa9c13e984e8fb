package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/jiraglance/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("jiraglance", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }

	configPath := fs.StringP("config", "c", "", "config file (JSON with comments)")
	baseURL := fs.String("base-url", "", "JIRA base URL")
	theme := fs.String("theme", "", "classic, neon or mono")
	logLevel := fs.String("log-level", "", "debug, info, warn, error")
	logFile := fs.String("log-file", "", "write logs to this file")
	noColor := fs.Bool("no-color", false, "disable colors")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Hand the remaining args to the CLI runner.
	code := cli.Run(ctx, fs.Args(), cli.Options{
		ConfigPath: *configPath,
		BaseURL:    *baseURL,
		Theme:      *theme,
		LogLevel:   *logLevel,
		LogFile:    *logFile,
		NoColor:    *noColor || os.Getenv("NO_COLOR") != "",
	})
	stop()
	os.Exit(code)
}
