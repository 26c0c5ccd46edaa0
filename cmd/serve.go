package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/sieve/pkg/api"
	"github.com/rubiojr/sieve/pkg/config"
	"github.com/rubiojr/sieve/pkg/dataset"
	"github.com/rubiojr/sieve/pkg/log"
	"github.com/rubiojr/sieve/pkg/realtime"
	"github.com/urfave/cli/v3"
)

var serveLog = log.ForService("serve")

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the HTTP API and WebSocket page sessions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Address to listen on (defaults to the config listen address)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the dataset when the data file changes",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"), c.String("listen"), c.Bool("watch"))
		},
	}
}

// serve runs the API server until interrupted
func serve(ctx context.Context, configPath, listen string, watch bool) error {
	cfg, data, err := loadWorkspace(configPath)
	if err != nil {
		return err
	}
	if listen == "" {
		listen = cfg.Listen
	}

	hub := realtime.NewHub(0)
	apiServer := api.NewServer(data, hub, serverOptions(cfg))

	server := &http.Server{
		Addr:              listen,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		serveLog.Infof("Starting server on http://%s", listen)
		serveLog.Infof("  GET /health")
		serveLog.Infof("  GET /api/pages")
		serveLog.Infof("  GET /api/pages/{page}/profile")
		serveLog.Infof("  GET /api/pages/{page}/categories")
		serveLog.Infof("  GET /api/pages/{page}/items")
		serveLog.Infof("  GET /ws/pages/{page}")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	var watcher *fsnotify.Watcher
	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if watch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			serveLog.Warnf("failed to create data file watcher: %v", err)
		} else {
			defer func() {
				if err := watcher.Close(); err != nil {
					serveLog.Warnf("failed to close data file watcher: %v", err)
				}
			}()

			if err := watcher.Add(cfg.DataFile); err != nil {
				serveLog.Warnf("failed to watch data file %s: %v", cfg.DataFile, err)
			} else {
				serveLog.Infof("Watching data file for changes: %s", cfg.DataFile)
			}
			events, watchErrs = watcher.Events, watcher.Errors
		}
	}

	shutdown := func() error {
		serveLog.Infof("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}

	for {
		select {
		case <-ctx.Done():
			return shutdown()
		case err := <-errCh:
			return fmt.Errorf("serving: %w", err)
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				serveLog.Infof("Received SIGHUP, reloading dataset...")
				reloadDataset(apiServer, cfg.DataFile)
			case syscall.SIGINT, syscall.SIGTERM:
				return shutdown()
			}
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			serveLog.Infof("Data file changed: %s (event: %s), reloading dataset...", event.Name, event.Op.String())

			// Editors and exporters often replace the file atomically
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(200 * time.Millisecond)

				if _, err := os.Stat(cfg.DataFile); os.IsNotExist(err) {
					serveLog.Warnf("Data file was removed and not replaced, keeping current dataset")
					continue
				}
				if err := watcher.Add(cfg.DataFile); err != nil {
					serveLog.Warnf("failed to re-add data file to watcher: %v", err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}

			reloadDataset(apiServer, cfg.DataFile)
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			serveLog.Warnf("Data file watcher error: %v", err)
		}
	}
}

func serverOptions(cfg *config.Config) api.Options {
	return api.Options{
		Locale: cfg.Locale,
		Mode:   cfg.ProfileMode(),
		Labels: cfg.CategoryLabels(),
	}
}

// reloadDataset loads path and hands the result to the server, which pushes
// it to every open session. A failed load keeps the current dataset.
func reloadDataset(apiServer *api.Server, path string) {
	data, err := dataset.Load(path)
	if err != nil {
		apiServer.ReloadFailed(path, err)
		return
	}
	apiServer.Reload(path, data)
}
