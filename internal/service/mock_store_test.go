package service

import (
	"context"

	"github.com/inclusionhub/backend/pkg/schema"
)

// ---------------------------------------------------------------------------
// mockContentStore — func-field stub for testing
// ---------------------------------------------------------------------------

type mockContentStore struct {
	createMessageFunc func(ctx context.Context, in schema.MessageInput) (*schema.Message, error)
	getProgramsFunc   func(ctx context.Context) ([]schema.Program, error)
	getStoriesFunc    func(ctx context.Context) ([]schema.Story, error)
	seedDataFunc      func(ctx context.Context) error
}

func (m *mockContentStore) CreateMessage(ctx context.Context, in schema.MessageInput) (*schema.Message, error) {
	if m.createMessageFunc != nil {
		return m.createMessageFunc(ctx, in)
	}
	return nil, nil
}

func (m *mockContentStore) GetPrograms(ctx context.Context) ([]schema.Program, error) {
	if m.getProgramsFunc != nil {
		return m.getProgramsFunc(ctx)
	}
	return nil, nil
}

func (m *mockContentStore) GetStories(ctx context.Context) ([]schema.Story, error) {
	if m.getStoriesFunc != nil {
		return m.getStoriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockContentStore) SeedData(ctx context.Context) error {
	if m.seedDataFunc != nil {
		return m.seedDataFunc(ctx)
	}
	return nil
}
