package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"perlxref/internal/config"
	"perlxref/internal/observability"
)

var (
	configPath = flag.String("config", "./perlxref.toml", "Path to config file")
	watch      = flag.Bool("watch", false, "Keep running and rescan on file changes")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("perlxref v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: perlxref [flags] <root-dir>")
		os.Exit(1)
	}
	root := flag.Arg(0)
	if trimmed := strings.TrimRight(root, "/"); trimmed != "" {
		root = trimmed
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *watch && cfg.Output.HTML == "" {
		fmt.Fprintln(os.Stderr, "watch mode requires an output.html path in the config")
		os.Exit(1)
	}

	app, err := NewApp(cfg, root)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.ScanAndReport(); err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := observability.Serve(cfg.Metrics.Addr); err != nil {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	if err := app.Watch(); err != nil {
		slog.Error("watch failed", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
}
