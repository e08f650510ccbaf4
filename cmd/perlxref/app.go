package main

import (
	"fmt"
	"log/slog"
	"os"

	"perlxref/internal/config"
	"perlxref/internal/history"
	"perlxref/internal/report"
	"perlxref/internal/scanner"
	"perlxref/internal/watcher"
)

// App ties together one scan target: walker, scanner, optional history store
// and optional watcher. Each rescan builds a fresh symbol table.
type App struct {
	cfg     *config.Config
	root    string
	scanner *scanner.Scanner
	history *history.Store
	watcher *watcher.Watcher
}

func NewApp(cfg *config.Config, root string) (*App, error) {
	walker, err := scanner.NewWalker(cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:     cfg,
		root:    root,
		scanner: scanner.New(walker),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		app.history = store
	}
	return app, nil
}

// ScanAndReport runs one full scan and writes the report to the configured
// output, stdout when none is set.
func (a *App) ScanAndReport() error {
	table, err := a.scanner.Run(a.root)
	if err != nil {
		return err
	}

	out := os.Stdout
	if a.cfg.Output.HTML != "" {
		f, err := os.Create(a.cfg.Output.HTML)
		if err != nil {
			return fmt.Errorf("create report output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.NewRenderer(table).Render(out, a.root); err != nil {
		return err
	}

	if a.history != nil {
		if err := a.history.SaveScan(a.root, table.Stats()); err != nil {
			slog.Warn("failed to save history snapshot", "error", err)
		}
	}
	return nil
}

// Watch starts rescanning on file changes until the process exits.
func (a *App) Watch() error {
	w, err := watcher.New(
		a.cfg.Watch.Debounce,
		a.cfg.Watch.EventsPerSecond,
		a.cfg.Watch.Burst,
		a.cfg.Exclude.Dirs,
		func() {
			if err := a.ScanAndReport(); err != nil {
				slog.Error("rescan failed", "error", err)
			}
		},
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.root)
}

func (a *App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.history != nil {
		_ = a.history.Close()
	}
}
