package service

import (
	"context"

	"github.com/inclusionhub/backend/pkg/schema"
)

// ContentService serves the read-only site content.
type ContentService interface {
	Programs(ctx context.Context) ([]schema.Program, error)
	Stories(ctx context.Context) ([]schema.Story, error)
}
