package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/inclusionhub/backend/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContentStoreContract exercises the behaviour every ContentStore shares.
func runContentStoreContract(t *testing.T, newStore func(t *testing.T) ContentStore) {
	t.Run("CreateMessageAssignsUniqueIDs", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		before := time.Now().Add(-time.Millisecond)
		seen := make(map[int64]bool)
		for i := 0; i < 5; i++ {
			msg, err := store.CreateMessage(ctx, schema.MessageInput{
				Name:    "Jane Doe",
				Email:   "jane@example.com",
				Message: "This is a test message.",
			})
			require.NoError(t, err)
			assert.False(t, seen[msg.ID], "duplicate id %d", msg.ID)
			seen[msg.ID] = true
			assert.False(t, msg.CreatedAt.Before(before), "createdAt %v before call %v", msg.CreatedAt, before)
			assert.Equal(t, time.UTC, msg.CreatedAt.Location())
		}
	})

	t.Run("CreateMessageFirstIDIsOne", func(t *testing.T) {
		store := newStore(t)
		msg, err := store.CreateMessage(context.Background(), schema.MessageInput{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Subject: schema.Ptr("Hello"),
			Message: "This is a test message.",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), msg.ID)
		assert.Equal(t, "Jane Doe", msg.Name)
		require.NotNil(t, msg.Subject)
		assert.Equal(t, "Hello", *msg.Subject)
		assert.NoError(t, schema.ValidateMessage(*msg))
	})

	t.Run("CreateMessageEmptySubjectIsNull", func(t *testing.T) {
		store := newStore(t)
		msg, err := store.CreateMessage(context.Background(), schema.MessageInput{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Subject: schema.Ptr(""),
			Message: "This is a test message.",
		})
		require.NoError(t, err)
		assert.Nil(t, msg.Subject)
	})

	t.Run("IdenticalSubmissionsAreDistinct", func(t *testing.T) {
		store := newStore(t)
		in := schema.MessageInput{Name: "Jane", Email: "jane@example.com", Message: "Same text twice."}
		a, err := store.CreateMessage(context.Background(), in)
		require.NoError(t, err)
		b, err := store.CreateMessage(context.Background(), in)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("EmptyBeforeSeed", func(t *testing.T) {
		store := newStore(t)
		programs, err := store.GetPrograms(context.Background())
		require.NoError(t, err)
		assert.Empty(t, programs)
		assert.NotNil(t, programs)

		stories, err := store.GetStories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, stories)
		assert.NotNil(t, stories)
	})

	t.Run("SeedDataDefaults", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SeedData(context.Background()))

		programs, err := store.GetPrograms(context.Background())
		require.NoError(t, err)
		require.Len(t, programs, 3)
		for i, p := range programs {
			assert.Equal(t, int64(i+1), p.ID)
			assert.Equal(t, DefaultPrograms()[i].Title, p.Title)
			assert.Equal(t, DefaultPrograms()[i].Gallery, p.Gallery)
			assert.NoError(t, schema.ValidateProgram(p))
		}
		assert.Equal(t, "training", programs[0].Category)
		assert.Equal(t, "community", programs[1].Category)
		assert.Equal(t, "advocacy", programs[2].Category)

		stories, err := store.GetStories(context.Background())
		require.NoError(t, err)
		require.Len(t, stories, 2)
		assert.Equal(t, int64(1), stories[0].ID)
		assert.Equal(t, "Sarah M.", stories[0].BeneficiaryName)
		assert.Equal(t, int64(2), stories[1].ID)
		assert.Equal(t, "David O.", stories[1].BeneficiaryName)
	})

	t.Run("SeedDataIsIdempotent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.SeedData(ctx))
		programsOnce, err := store.GetPrograms(ctx)
		require.NoError(t, err)
		storiesOnce, err := store.GetStories(ctx)
		require.NoError(t, err)

		require.NoError(t, store.SeedData(ctx))
		programsTwice, err := store.GetPrograms(ctx)
		require.NoError(t, err)
		storiesTwice, err := store.GetStories(ctx)
		require.NoError(t, err)

		assert.Equal(t, programsOnce, programsTwice)
		assert.Equal(t, storiesOnce, storiesTwice)
	})

	t.Run("ConcurrentCreateMessage", func(t *testing.T) {
		store := newStore(t)
		const n = 20
		ids := make(chan int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				msg, err := store.CreateMessage(context.Background(), schema.MessageInput{
					Name: "Jane", Email: "jane@example.com", Message: "Concurrent hello",
				})
				if assert.NoError(t, err) {
					ids <- msg.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})
}
