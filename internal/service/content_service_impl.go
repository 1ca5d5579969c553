package service

import (
	"context"
	"fmt"

	"github.com/inclusionhub/backend/internal/repository"
	"github.com/inclusionhub/backend/pkg/schema"
)

type contentServiceImpl struct {
	store repository.ContentStore
}

// NewContentService creates a ContentService backed by the given store.
func NewContentService(store repository.ContentStore) ContentService {
	return &contentServiceImpl{store: store}
}

// Programs returns every program. The result is never nil.
func (s *contentServiceImpl) Programs(ctx context.Context) ([]schema.Program, error) {
	programs, err := s.store.GetPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("get programs: %w", err)
	}
	if programs == nil {
		programs = []schema.Program{}
	}
	return programs, nil
}

// Stories returns every story. The result is never nil.
func (s *contentServiceImpl) Stories(ctx context.Context) ([]schema.Story, error) {
	stories, err := s.store.GetStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stories: %w", err)
	}
	if stories == nil {
		stories = []schema.Story{}
	}
	return stories, nil
}
