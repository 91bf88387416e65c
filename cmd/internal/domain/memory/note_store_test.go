package memory

import (
	"context"
	"fmt"
	"notesapi/cmd/internal/domain/entity"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteStore_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore()

	first, err := store.Create(ctx, &entity.Note{Title: "a", Description: "b"})
	require.NoError(t, err)
	second, err := store.Create(ctx, &entity.Note{Title: "c", Description: "d"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	note, err := store.Get(ctx, second)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "c", note.Title)
	assert.Equal(t, "d", note.Description)
	assert.NotZero(t, note.CreatedAt)
}

func TestNoteStore_GetMissingReturnsNil(t *testing.T) {
	note, err := NewNoteStore().Get(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore()
	id, err := store.Create(ctx, &entity.Note{Title: "a", Description: "b"})
	require.NoError(t, err)

	note, err := store.Get(ctx, id)
	require.NoError(t, err)
	note.Title = "mutated"

	again, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Title)
}

func TestNoteStore_GetAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore()

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, &entity.Note{Title: fmt.Sprintf("note %d", i), Description: "x"})
		require.NoError(t, err)
	}

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, note := range all {
		assert.Equal(t, int64(i+1), note.ID)
	}
}

func TestNoteStore_PutReplacesFields(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore()
	id, err := store.Create(ctx, &entity.Note{Title: "old", Description: "old"})
	require.NoError(t, err)

	updated, err := store.Put(ctx, id, &entity.Note{ID: 42, Title: "new", Description: "new desc"})
	require.NoError(t, err)
	assert.Equal(t, id, updated)

	note, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, note.ID)
	assert.Equal(t, "new", note.Title)
	assert.Equal(t, "new desc", note.Description)
}

func TestNoteStore_PutMissingReturnsZero(t *testing.T) {
	updated, err := NewNoteStore().Put(context.Background(), 7, &entity.Note{Title: "t", Description: "d"})

	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestNoteStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Create(ctx, &entity.Note{Title: "t", Description: "d"})
		}()
	}
	wg.Wait()

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
	assert.Equal(t, int64(50), all[49].ID)
}
