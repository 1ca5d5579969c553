package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/inclusionhub/backend/internal/config"
	"github.com/inclusionhub/backend/internal/handler"
	"github.com/inclusionhub/backend/internal/logging"
	"github.com/inclusionhub/backend/internal/metrics"
	"github.com/inclusionhub/backend/internal/repository"
	"github.com/inclusionhub/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()
	store, err := repository.NewContentStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to open content store", "error", err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	if err := prepareStore(ctx, store, cfg.AutoMigrate); err != nil {
		logging.Fatal("failed to prepare content store", "error", err)
	}

	h, err := newHandler(cfg, store)
	if err != nil {
		logging.Fatal("failed to build router", "error", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "persistent", cfg.Persistent())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// prepareStore applies pending migrations when enabled and the store has a
// schema, then seeds the defaults once before the listener starts.
func prepareStore(ctx context.Context, store repository.ContentStore, autoMigrate bool) error {
	if m, ok := store.(repository.Migrator); ok && autoMigrate {
		if _, err := m.Migrate(ctx); err != nil {
			return err
		}
	}
	if err := store.SeedData(ctx); err != nil {
		return err
	}
	slog.Info("seed data ready")
	return nil
}

// newHandler wires services and handlers over store.
func newHandler(cfg *config.Config, store repository.ContentStore) (http.Handler, error) {
	// インメモリストアは Ping を持たないので nil のまま渡す
	var db repository.Pinger
	if p, ok := store.(repository.Pinger); ok {
		db = p
	}

	contactService := service.NewContactService(store)
	contentService := service.NewContentService(store)

	rc := handler.RouterConfig{
		Base:    handler.New(db, cfg.FrontendURL),
		Content: handler.NewContentHandler(contentService),
	}
	var contactOpts []handler.ContactOption
	if cfg.MetricsEnabled {
		m := metrics.New()
		rc.Metrics = m
		contactOpts = append(contactOpts, handler.WithSubmissionObserver(m.ObserveContactSubmission))
	}
	rc.Contact = handler.NewContactHandler(contactService, contactOpts...)

	return handler.NewRouter(rc)
}
