package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/inclusionhub/backend/pkg/schema"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLContentStore is the SQLite flavour of the persistent store, for
// single-node deployments and tests.
type SQLContentStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSQLContentStore opens dsn ("sqlite:<path>", "sqlite://<path>" or
// "file:<path>?...") and verifies the connection.
func OpenSQLContentStore(ctx context.Context, dsn string) (*SQLContentStore, error) {
	db, err := sqlx.Open("sqlite", sqlitePath(dsn))
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection also keeps :memory:
	// databases alive across calls.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLContentStore(db), nil
}

// NewSQLContentStore wraps an open sqlite handle.
func NewSQLContentStore(db *sqlx.DB) *SQLContentStore {
	return &SQLContentStore{db: db, now: time.Now}
}

var (
	_ ContentStore = (*SQLContentStore)(nil)
	_ Migrator     = (*SQLContentStore)(nil)
	_ Pinger       = (*SQLContentStore)(nil)
)

func sqlitePath(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		return strings.TrimPrefix(dsn, "sqlite:")
	}
	return dsn
}

type programRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	ImageURL    sql.NullString `db:"image_url"`
	Gallery     sql.NullString `db:"gallery"`
}

type storyRow struct {
	ID              int64          `db:"id"`
	Title           string         `db:"title"`
	Content         string         `db:"content"`
	BeneficiaryName string         `db:"beneficiary_name"`
	ImageURL        sql.NullString `db:"image_url"`
}

// CreateMessage inserts a messages row. The id comes from AUTOINCREMENT.
func (s *SQLContentStore) CreateMessage(ctx context.Context, in schema.MessageInput) (*schema.Message, error) {
	m := schema.Message{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   nilIfEmpty(in.Subject),
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Message, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &m, nil
}

// GetPrograms returns every program ordered by id.
func (s *SQLContentStore) GetPrograms(ctx context.Context) ([]schema.Program, error) {
	var rows []programRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, title, description, category, image_url, gallery FROM programs ORDER BY id`,
	); err != nil {
		return nil, fmt.Errorf("select programs: %w", err)
	}

	programs := make([]schema.Program, 0, len(rows))
	for _, r := range rows {
		p := schema.Program{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			ImageURL:    nullStringPtr(r.ImageURL),
		}
		var err error
		if r.Gallery.Valid {
			if p.Gallery, err = decodeGallery([]byte(r.Gallery.String)); err != nil {
				return nil, fmt.Errorf("program %d: %w", r.ID, err)
			}
		}
		programs = append(programs, p)
	}
	return programs, nil
}

// GetStories returns every story ordered by id.
func (s *SQLContentStore) GetStories(ctx context.Context) ([]schema.Story, error) {
	var rows []storyRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, title, content, beneficiary_name, image_url FROM stories ORDER BY id`,
	); err != nil {
		return nil, fmt.Errorf("select stories: %w", err)
	}

	stories := make([]schema.Story, 0, len(rows))
	for _, r := range rows {
		stories = append(stories, schema.Story{
			ID:              r.ID,
			Title:           r.Title,
			Content:         r.Content,
			BeneficiaryName: r.BeneficiaryName,
			ImageURL:        nullStringPtr(r.ImageURL),
		})
	}
	return stories, nil
}

// SeedData checks and fills both tables inside one transaction.
func (s *SQLContentStore) SeedData(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var programCount int
	if err := tx.GetContext(ctx, &programCount, `SELECT COUNT(*) FROM programs`); err != nil {
		return fmt.Errorf("seed: count programs: %w", err)
	}
	if programCount == 0 {
		for _, p := range DefaultPrograms() {
			gallery, err := encodeGallery(p.Gallery)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			var galleryCol sql.NullString
			if gallery != nil {
				galleryCol = sql.NullString{String: string(gallery), Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO programs (title, description, category, image_url, gallery) VALUES (?, ?, ?, ?, ?)`,
				p.Title, p.Description, p.Category, p.ImageURL, galleryCol,
			); err != nil {
				return fmt.Errorf("seed: insert program %q: %w", p.Title, err)
			}
		}
	}

	var storyCount int
	if err := tx.GetContext(ctx, &storyCount, `SELECT COUNT(*) FROM stories`); err != nil {
		return fmt.Errorf("seed: count stories: %w", err)
	}
	if storyCount == 0 {
		for _, st := range DefaultStories() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO stories (title, content, beneficiary_name, image_url) VALUES (?, ?, ?, ?)`,
				st.Title, st.Content, st.BeneficiaryName, st.ImageURL,
			); err != nil {
				return fmt.Errorf("seed: insert story %q: %w", st.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

// Ping checks the database handle.
func (s *SQLContentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLContentStore) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded sqlite migrations.
func (s *SQLContentStore) Migrate(ctx context.Context) (int, error) {
	return runMigrations(ctx, sqliteMigrationDriver{db: s.db})
}

// DropAll drops every table this service owns.
func (s *SQLContentStore) DropAll(ctx context.Context) error {
	return dropAll(ctx, sqliteMigrationDriver{db: s.db})
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return schema.Ptr(ns.String)
}

type sqliteMigrationDriver struct {
	db *sqlx.DB
}

func (sqliteMigrationDriver) dialect() string { return "sqlite" }

func (d sqliteMigrationDriver) execScript(ctx context.Context, script string) error {
	_, err := d.db.ExecContext(ctx, script)
	return err
}

func (d sqliteMigrationDriver) ensureLedger(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (d sqliteMigrationDriver) isApplied(ctx context.Context, name string) (bool, error) {
	var n int
	err := d.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name)
	return n > 0, err
}

func (d sqliteMigrationDriver) markApplied(ctx context.Context, name string) error {
	_, err := d.db.ExecContext(ctx, `INSERT OR IGNORE INTO schema_migrations (name) VALUES (?)`, name)
	return err
}
