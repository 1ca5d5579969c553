package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inclusionhub/backend/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// seedLockKey is the pg_advisory_xact_lock key held while seeding.
const seedLockKey int64 = 0x5eed_c0de

// PgContentStore は ContentStore の PostgreSQL 実装
type PgContentStore struct {
	pool *pgxpool.Pool
}

// NewPgContentStore は PgContentStore を生成する
func NewPgContentStore(pool *pgxpool.Pool) *PgContentStore {
	return &PgContentStore{pool: pool}
}

var (
	_ ContentStore = (*PgContentStore)(nil)
	_ Migrator     = (*PgContentStore)(nil)
	_ Pinger       = (*PgContentStore)(nil)
)

// CreateMessage inserts a messages row. id and created_at come from the
// database.
func (s *PgContentStore) CreateMessage(ctx context.Context, in schema.MessageInput) (*schema.Message, error) {
	var m schema.Message
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (name, email, subject, message)
		 VALUES ($1, $2, NULLIF($3, ''), $4)
		 RETURNING id, name, email, subject, message, created_at`,
		in.Name, in.Email, in.Subject, in.Message,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}

// GetPrograms はプログラム一覧を ID 順で取得する
func (s *PgContentStore) GetPrograms(ctx context.Context) ([]schema.Program, error) {
	return queryPrograms(ctx, s.pool)
}

// GetStories はストーリー一覧を ID 順で取得する
func (s *PgContentStore) GetStories(ctx context.Context) ([]schema.Story, error) {
	return queryStories(ctx, s.pool)
}

// SeedData inserts the defaults into empty tables. The check and the
// insert run in one transaction under an advisory lock, so two processes
// starting together cannot both seed.
func (s *PgContentStore) SeedData(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return fmt.Errorf("seed: lock: %w", err)
	}

	var programCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM programs`).Scan(&programCount); err != nil {
		return fmt.Errorf("seed: count programs: %w", err)
	}
	if programCount == 0 {
		for _, p := range DefaultPrograms() {
			gallery, err := encodeGallery(p.Gallery)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO programs (title, description, category, image_url, gallery)
				 VALUES ($1, $2, $3, $4, $5)`,
				p.Title, p.Description, p.Category, p.ImageURL, gallery,
			); err != nil {
				return fmt.Errorf("seed: insert program %q: %w", p.Title, err)
			}
		}
	}

	var storyCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM stories`).Scan(&storyCount); err != nil {
		return fmt.Errorf("seed: count stories: %w", err)
	}
	if storyCount == 0 {
		for _, st := range DefaultStories() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO stories (title, content, beneficiary_name, image_url)
				 VALUES ($1, $2, $3, $4)`,
				st.Title, st.Content, st.BeneficiaryName, st.ImageURL,
			); err != nil {
				return fmt.Errorf("seed: insert story %q: %w", st.Title, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

// Ping checks the pool.
func (s *PgContentStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *PgContentStore) Close() error {
	s.pool.Close()
	return nil
}

// Migrate applies the embedded postgres migrations.
func (s *PgContentStore) Migrate(ctx context.Context) (int, error) {
	return runMigrations(ctx, pgMigrationDriver{pool: s.pool})
}

// DropAll drops every table this service owns.
func (s *PgContentStore) DropAll(ctx context.Context) error {
	return dropAll(ctx, pgMigrationDriver{pool: s.pool})
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryPrograms(ctx context.Context, q querier) ([]schema.Program, error) {
	rows, err := q.Query(ctx,
		`SELECT id, title, description, category, image_url, gallery
		 FROM programs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select programs: %w", err)
	}
	defer rows.Close()

	programs := []schema.Program{}
	for rows.Next() {
		var p schema.Program
		var gallery []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL, &gallery); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		if p.Gallery, err = decodeGallery(gallery); err != nil {
			return nil, fmt.Errorf("program %d: %w", p.ID, err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func queryStories(ctx context.Context, q querier) ([]schema.Story, error) {
	rows, err := q.Query(ctx,
		`SELECT id, title, content, beneficiary_name, image_url
		 FROM stories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select stories: %w", err)
	}
	defer rows.Close()

	stories := []schema.Story{}
	for rows.Next() {
		var st schema.Story
		if err := rows.Scan(&st.ID, &st.Title, &st.Content, &st.BeneficiaryName, &st.ImageURL); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, st)
	}
	return stories, rows.Err()
}

// encodeGallery returns nil for an empty gallery so the column stays NULL.
func encodeGallery(g schema.Gallery) ([]byte, error) {
	if len(g) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode gallery: %w", err)
	}
	return b, nil
}

func decodeGallery(b []byte) (schema.Gallery, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var g schema.Gallery
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("decode gallery: %w", err)
	}
	if len(g) == 0 {
		return nil, nil
	}
	return g, nil
}

type pgMigrationDriver struct {
	pool *pgxpool.Pool
}

func (pgMigrationDriver) dialect() string { return "postgres" }

func (d pgMigrationDriver) execScript(ctx context.Context, script string) error {
	_, err := d.pool.Exec(ctx, script)
	return err
}

func (d pgMigrationDriver) ensureLedger(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (d pgMigrationDriver) isApplied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := d.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	return exists, err
}

func (d pgMigrationDriver) markApplied(ctx context.Context, name string) error {
	_, err := d.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
	return err
}
