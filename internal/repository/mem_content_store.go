package repository

import (
	"context"
	"sync"
	"time"

	"github.com/inclusionhub/backend/pkg/schema"
)

// MemContentStore keeps everything in process memory. Data is lost on
// restart.
type MemContentStore struct {
	mu sync.RWMutex

	messages      map[int64]schema.Message
	nextMessageID int64

	programs     map[int64]schema.Program
	programOrder []int64

	stories    map[int64]schema.Story
	storyOrder []int64

	now func() time.Time
}

// NewMemContentStore は空の MemContentStore を生成する
func NewMemContentStore() *MemContentStore {
	return &MemContentStore{
		messages:      make(map[int64]schema.Message),
		nextMessageID: 1,
		programs:      make(map[int64]schema.Program),
		stories:       make(map[int64]schema.Story),
		now:           time.Now,
	}
}

var _ ContentStore = (*MemContentStore)(nil)

// CreateMessage assigns the next counter value as id and stamps the
// current UTC time.
func (s *MemContentStore) CreateMessage(_ context.Context, in schema.MessageInput) (*schema.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextMessageID
	s.nextMessageID++

	msg := schema.Message{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Subject:   nilIfEmpty(in.Subject),
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	s.messages[id] = msg
	return &msg, nil
}

// GetPrograms returns copies of the stored Programs in insertion order.
func (s *MemContentStore) GetPrograms(_ context.Context) ([]schema.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schema.Program, 0, len(s.programOrder))
	for _, id := range s.programOrder {
		out = append(out, cloneProgram(s.programs[id]))
	}
	return out, nil
}

// GetStories returns copies of the stored Stories in insertion order.
func (s *MemContentStore) GetStories(_ context.Context) ([]schema.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schema.Story, 0, len(s.storyOrder))
	for _, id := range s.storyOrder {
		out = append(out, cloneStory(s.stories[id]))
	}
	return out, nil
}

// SeedData fills each empty collection with the defaults, ids from 1.
func (s *MemContentStore) SeedData(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.programs) == 0 {
		for i, p := range DefaultPrograms() {
			p.ID = int64(i + 1)
			s.programs[p.ID] = p
			s.programOrder = append(s.programOrder, p.ID)
		}
	}
	if len(s.stories) == 0 {
		for i, st := range DefaultStories() {
			st.ID = int64(i + 1)
			s.stories[st.ID] = st
			s.storyOrder = append(s.storyOrder, st.ID)
		}
	}
	return nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
