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

	"go.uber.org/zap"

	"github.com/petasbytes/code-agent/internal/config"
	"github.com/petasbytes/code-agent/internal/logging"
	"github.com/petasbytes/code-agent/internal/provider"
	"github.com/petasbytes/code-agent/internal/runner"
	"github.com/petasbytes/code-agent/internal/telemetry"
	"github.com/petasbytes/code-agent/internal/ui"
	"github.com/petasbytes/code-agent/tools"
)

var BUILD_VERSION = "dev"

const helpText = `agent - chat with Claude; it can read, list and edit files in this directory

USAGE:
  agent [options]

The API key is read from ANTHROPIC_API_KEY.

OPTIONS:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the agent and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, os.Getenv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprint(stdout, helpText)
		config.PrintUsage(stdout)
		return 0
	case errors.Is(err, config.ErrMissingAPIKey):
		fmt.Fprintln(stderr, "Please set the ANTHROPIC_API_KEY environment variable")
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if cfg.ShowVersion {
		fmt.Fprintln(stdout, BUILD_VERSION)
		return 0
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer logger.Sync() // Flush any buffered log entries

	events, closeEvents, err := telemetry.Open(cfg.EventsFile)
	if err != nil {
		logger.Error("failed to open events file", zap.String("path", cfg.EventsFile), zap.Error(err))
		return 1
	}
	defer closeEvents()

	client := provider.NewAnthropicClient(provider.Config{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		BaseURL:   cfg.BaseURL,
	})
	registry := tools.Default()

	logger.Info("-------- new agent session --------",
		zap.String("version", BUILD_VERSION),
		zap.String("model", client.Model()),
		zap.Int("tools", registry.Len()),
		zap.Int("max_tool_rounds", cfg.MaxToolRounds),
	)

	render := ui.NewRenderer(stdout, stderr, cfg.NoColor)
	r := runner.New(client, registry, runner.Options{
		MaxToolRounds: cfg.MaxToolRounds,
		Logger:        logger,
		Events:        events,
		Renderer:      render,
	})

	in := ui.NewLineReader(stdin, stdout)
	defer in.Close()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go watchSignals(sigch, render, in, logger, os.Exit)

	render.Banner()
	err = r.Run(context.Background(), in)
	if errors.Is(err, ui.ErrInterrupted) {
		render.Farewell()
		return 0
	}
	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		return 1
	}
	return 0
}

// watchSignals waits for one signal, restores the terminal by closing in,
// prints the farewell and exits 0 without waiting for in-flight work.
func watchSignals(sigch <-chan os.Signal, render *ui.Renderer, in io.Closer, logger *zap.Logger, exit func(int)) {
	sig := <-sigch
	if err := in.Close(); err != nil {
		logger.Warn("failed to restore terminal", zap.Error(err))
	}
	logger.Info("signal received", zap.String("signal", sig.String()))
	render.Farewell()
	_ = logger.Sync()
	exit(0)
}
