package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/elabmcp/internal/domain/dispatch"
	"github.com/matiasleandrokruk/elabmcp/internal/infra/config"
	"github.com/matiasleandrokruk/elabmcp/internal/infra/elabftw"
	"github.com/matiasleandrokruk/elabmcp/internal/server"
	"github.com/matiasleandrokruk/elabmcp/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("elabmcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	// Stdout carries the MCP protocol; all logging goes to stderr.
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("configuration error")
		return 1
	}

	log.Info().
		Str("api_url", cfg.BaseURL).
		Bool("verify_tls", cfg.VerifyTLS).
		Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := elabftw.NewClient(cfg)
	dispatcher := dispatch.New(client, log)
	srv := server.New(dispatcher, log)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server stopped")
		return 1
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `elabmcp - MCP server for the eLabFTW electronic lab notebook

Serves MCP over stdio, exposing eLabFTW experiments, resources, and
equipment bookings as tools for AI assistants.

Usage:
  elabmcp [options]

Options:
  --version          Show version information
  --help             Show this help message
  --config <path>    Load settings from a YAML file (env vars take precedence)

Environment:
  ELABFTW_API_URL      Base URL of the eLabFTW API (e.g. https://lab.example.org/api/v2)
  ELABFTW_API_KEY      API key for authentication
  ELABFTW_VERIFY_SSL   Set to "true" to verify TLS certificates (default: false)

Examples:
  ELABFTW_API_URL=https://lab.example.org/api/v2 ELABFTW_API_KEY=... elabmcp
  elabmcp --config elabmcp.yaml`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
