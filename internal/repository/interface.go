package repository

import (
	"context"

	"github.com/inclusionhub/backend/pkg/schema"
)

// Pinger は DB 接続の生存確認を行うインターフェース
type Pinger interface {
	Ping(ctx context.Context) error
}

// ContentStore owns Messages, Programs and Stories. The rest of the system
// does not know which implementation is active.
type ContentStore interface {
	// CreateMessage persists an already validated input and returns it with
	// a fresh id and creation timestamp.
	CreateMessage(ctx context.Context, in schema.MessageInput) (*schema.Message, error)
	// GetPrograms returns every Program in insertion order.
	GetPrograms(ctx context.Context) ([]schema.Program, error)
	// GetStories returns every Story in insertion order.
	GetStories(ctx context.Context) ([]schema.Story, error)
	// SeedData inserts the default Programs and Stories into empty
	// collections. Calling it again is a no-op.
	SeedData(ctx context.Context) error
}

// Migrator is implemented by persistent stores that own a schema.
type Migrator interface {
	// Migrate applies pending migrations and returns how many ran.
	Migrate(ctx context.Context) (int, error)
	// DropAll removes every table, including the migration ledger.
	DropAll(ctx context.Context) error
}
