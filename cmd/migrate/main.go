package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inclusionhub/backend/internal/logging"
	"github.com/inclusionhub/backend/internal/repository"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	logging.Setup(logging.Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})

	if err := newRootCmd().Execute(); err != nil {
		logging.Fatal("migrate failed", "error", err)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the content store",
		Long: `Apply database migrations for the content store.

Commands:
  (default)   差分マイグレーションを適用
  reset       全テーブルを DROP する
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), databaseURL, runIncremental)
		},
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"),
		"postgres:// or sqlite: DSN (default $DATABASE_URL)")

	root.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Drop every table, including the migration ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), databaseURL, runDropAll)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "fresh",
		Short: "Drop every table and apply all migrations from scratch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), databaseURL, func(ctx context.Context, m repository.Migrator) error {
				if err := runDropAll(ctx, m); err != nil {
					return err
				}
				return runIncremental(ctx, m)
			})
		},
	})
	return root
}

// withMigrator opens the store for dsn and runs fn against it.
func withMigrator(ctx context.Context, dsn string, fn func(context.Context, repository.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if dsn == "" {
		return errors.New("DATABASE_URL is required; the in-memory store has no schema")
	}
	store, err := repository.NewContentStore(ctx, dsn)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}
	m, ok := store.(repository.Migrator)
	if !ok {
		return fmt.Errorf("store %T does not support migrations", store)
	}
	return fn(ctx, m)
}

func runIncremental(ctx context.Context, m repository.Migrator) error {
	applied, err := m.Migrate(ctx)
	if err != nil {
		return err
	}
	slog.Info("migrations completed", "count", applied)
	return nil
}

func runDropAll(ctx context.Context, m repository.Migrator) error {
	slog.Info("dropping all tables")
	return m.DropAll(ctx)
}
