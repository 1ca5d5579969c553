package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationFS embed.FS

// migrationDriver is the dialect specific half of the migration runner.
type migrationDriver interface {
	dialect() string
	execScript(ctx context.Context, script string) error
	ensureLedger(ctx context.Context) error
	isApplied(ctx context.Context, name string) (bool, error)
	markApplied(ctx context.Context, name string) error
}

// collectUpFiles は .up.sql ファイル名をソート済みで返す
func collectUpFiles(dialect string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, path.Join("migrations", dialect))
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func readMigration(dialect, filename string) (string, error) {
	b, err := fs.ReadFile(migrationFS, path.Join("migrations", dialect, filename))
	if err != nil {
		return "", fmt.Errorf("read migration %s: %w", filename, err)
	}
	return string(b), nil
}

// runMigrations applies every .up.sql file not yet recorded in
// schema_migrations, in file name order.
func runMigrations(ctx context.Context, d migrationDriver) (int, error) {
	if err := d.ensureLedger(ctx); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}
	files, err := collectUpFiles(d.dialect())
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")

		done, err := d.isApplied(ctx, name)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		script, err := readMigration(d.dialect(), filename)
		if err != nil {
			return applied, err
		}
		if err := d.execScript(ctx, script); err != nil {
			return applied, fmt.Errorf("migration %s failed: %w", name, err)
		}
		if err := d.markApplied(ctx, name); err != nil {
			return applied, fmt.Errorf("record migration %s: %w", name, err)
		}
		applied++
		slog.Info("migration completed", "dialect", d.dialect(), "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied", "dialect", d.dialect())
	}
	return applied, nil
}

// dropAll runs 000_drop_all.sql for the dialect.
func dropAll(ctx context.Context, d migrationDriver) error {
	script, err := readMigration(d.dialect(), "000_drop_all.sql")
	if err != nil {
		return err
	}
	if err := d.execScript(ctx, script); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	slog.Info("all tables dropped", "dialect", d.dialect())
	return nil
}
