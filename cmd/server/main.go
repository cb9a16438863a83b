package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/wordjson/internal/api"
	"github.com/dgallion1/wordjson/internal/config"
	"github.com/dgallion1/wordjson/internal/convert"
	"github.com/dgallion1/wordjson/internal/pathstore"
	"github.com/dgallion1/wordjson/internal/store"
	"github.com/dgallion1/wordjson/internal/upload"
)

func main() {
	cfg, err := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the file metadata store.
	var st store.Store
	switch cfg.StoreBackend {
	case "pathstore":
		ps := pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		st = store.NewPathstoreStore(ps, cfg.PathstorePrefix, log)
	default:
		st, err = store.OpenSQLite(cfg.DBPath, log)
		if err != nil {
			log.Error("open store", "error", err)
			os.Exit(1)
		}
	}

	uploads, err := upload.NewDir(cfg.UploadDir)
	if err != nil {
		log.Error("prepare upload dir", "error", err)
		os.Exit(1)
	}

	// Conversion cache, swept in the background.
	cache := convert.NewCache(cfg.CacheTTL)
	go cache.Run(ctx, cfg.CacheCleanupInterval)
	conv := convert.NewConverter(log, cache)

	// Initialize HTTP server.
	srv := api.NewServer(st, uploads, conv, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}

		if err := st.Close(); err != nil {
			log.Warn("close store", "error", err)
		}
	}()

	log.Info("starting wordjson",
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"upload_dir", uploads.Root(),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
