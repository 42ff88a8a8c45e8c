package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sqlprobe/internal/config"
	"sqlprobe/internal/identity"
	"sqlprobe/internal/logging"
	"sqlprobe/internal/monitor"
	"sqlprobe/internal/probe"
	"sqlprobe/internal/server"
	"sqlprobe/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file (YAML)")
		addr       = flag.String("addr", ":8080", "address for the web server")
	)
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if cfg.ConnectionString == "" {
		slog.Warn("no database connection string configured; the status page will report it")
	}

	historyPath := filepath.Join(cfg.DataDirectory, "probe_history.json")
	store, err := storage.NewProbeStorage(historyPath, cfg.HistoryLimit)
	if err != nil {
		slog.Error("initialise storage", "error", err)
		os.Exit(1)
	}

	tokens, err := identity.NewAzureTokenProvider(cfg.AzureClientID, cfg.TokenScope)
	if err != nil {
		slog.Error("initialise token provider", "error", err)
		os.Exit(1)
	}

	prober := probe.New(
		cfg.ConnectionString,
		tokens,
		probe.NewMSSQLConnector(),
		time.Duration(cfg.ProbeTimeoutSeconds)*time.Second,
	)

	if cfg.Monitor.Enabled {
		mon := monitor.New(time.Duration(cfg.Monitor.IntervalMinutes)*time.Minute, prober, store)
		mon.Start()
		defer mon.Stop()
	}

	srv := server.New(*addr, prober, store, cfg.HistoryLimit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	slog.Info("sqlprobe listening", "addr", *addr)
	if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
