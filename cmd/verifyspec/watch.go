package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lsst/verify-sub000/config"
	"github.com/lsst/verify-sub000/spec"
	"github.com/lsst/verify-sub000/telemetry"
)

func watchCmd(opts *appOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the specification tree whenever its files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Watch.MetricsAddr = metricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for the prometheus endpoint (e.g. :9090)")
	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Watch.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", telemetry.Handler())
		server := &http.Server{Addr: cfg.Watch.MetricsAddr, Handler: mux}
		go func() {
			logger.Info("Metrics endpoint listening", "addr", cfg.Watch.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics endpoint failed", "error", err)
			}
		}()
		defer server.Close()
	}

	reload := func() {
		set, err := spec.LoadDirectory(cfg.Specs.Dir, logger)
		if err != nil {
			logger.Error("Reload failed", "dir", cfg.Specs.Dir, "error", err)
			return
		}
		logger.Info("Specification tree loaded",
			"dir", cfg.Specs.Dir,
			"specifications", set.Len())
	}
	reload()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchesRecursive(watcher, cfg.Specs.Dir, logger); err != nil {
		return err
	}

	logger.Info("Watching for changes",
		"dir", cfg.Specs.Dir,
		"debounce", cfg.Watch.GetDebounceDelay())

	// Debounce: mark dirty on events, reload on the next tick.
	ticker := time.NewTicker(cfg.Watch.GetDebounceDelay())
	defer ticker.Stop()
	dirty := false

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if handleWatchEvent(watcher, event, logger) {
				dirty = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if dirty {
				dirty = false
				reload()
			}
		}
	}
}

// handleWatchEvent reports whether the event should trigger a reload.
// Newly created directories are added to the watch set so files written
// into them are seen.
func handleWatchEvent(watcher *fsnotify.Watcher, event fsnotify.Event, logger *slog.Logger) bool {
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext == ".yaml" || ext == ".yml" {
		logger.Debug("Specification file changed", "path", event.Name, "op", event.Op)
		return true
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			} else {
				logger.Debug("Watching new directory", "path", event.Name)
			}
		}
	}
	return false
}

// addWatchesRecursive adds watches to root and all its subdirectories,
// skipping hidden ones.
func addWatchesRecursive(watcher *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}
