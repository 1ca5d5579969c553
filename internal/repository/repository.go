package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// NewContentStore selects the ContentStore for dsn. An empty dsn gives the
// in-process store; postgres:// and postgresql:// give PgContentStore;
// sqlite: and file: give SQLContentStore. Callers should close the result
// when it implements io.Closer.
func NewContentStore(ctx context.Context, dsn string) (ContentStore, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		slog.Info("content store selected", "driver", "memory")
		return NewMemContentStore(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		slog.Info("content store selected", "driver", "postgres")
		return NewPgContentStore(pool), nil
	case strings.HasPrefix(dsn, "sqlite:"), strings.HasPrefix(dsn, "file:"):
		store, err := OpenSQLContentStore(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		slog.Info("content store selected", "driver", "sqlite")
		return store, nil
	default:
		scheme, _, _ := strings.Cut(dsn, ":")
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, scheme)
	}
}
