package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inclusionhub/backend/internal/repository"
	"github.com/inclusionhub/backend/pkg/schema"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	store repository.ContentStore
}

// NewContactService creates a ContactService backed by the given store.
func NewContactService(store repository.ContentStore) ContactService {
	return &contactServiceImpl{store: store}
}

// Submit re-checks the input so callers that skip the HTTP layer cannot
// bypass the rules, then persists it.
func (s *contactServiceImpl) Submit(ctx context.Context, in schema.MessageInput) (*schema.Message, error) {
	in, err := schema.ValidateMessageInput(in)
	if err != nil {
		return nil, err
	}
	msg, err := s.store.CreateMessage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	slog.InfoContext(ctx, "contact message stored", "id", msg.ID, "has_subject", msg.Subject != nil)
	return msg, nil
}
