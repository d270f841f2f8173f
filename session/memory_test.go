package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	delegate "github.com/armatrix/delegate-go"
)

func sampleSession() *delegate.Session {
	s := delegate.NewSession()
	s.Append(delegate.Turn{Agent: "root", Prompt: "plan", Output: "done", Depth: 0, At: time.Now()})
	s.Append(delegate.Turn{Agent: "worker", Prompt: "execute", Output: "ok", Depth: 1, At: time.Now()})
	return s
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := sampleSession()

	require.NoError(t, store.Save(ctx, s))

	loaded, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	require.Len(t, loaded.Turns, 2)
	assert.Equal(t, "worker", loaded.Turns[1].Agent)
}

func TestMemoryStore_SaveNil(t *testing.T) {
	store := NewMemoryStore()
	assert.Error(t, store.Save(context.Background(), nil))
}

func TestMemoryStore_LoadNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "sess_missing")
	assert.ErrorContains(t, err, "session not found")
}

func TestMemoryStore_IsolatesCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := sampleSession()
	require.NoError(t, store.Save(ctx, s))

	// Mutating the original after save must not leak into the store.
	s.Turns[0].Output = "tampered"

	loaded, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", loaded.Turns[0].Output)

	// Nor should mutating a loaded copy.
	loaded.Turns[0].Output = "tampered again"
	reloaded, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", reloaded.Turns[0].Output)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := sampleSession()
	require.NoError(t, store.Save(ctx, s))

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err := store.Load(ctx, s.ID)
	assert.Error(t, err)

	assert.ErrorContains(t, store.Delete(ctx, s.ID), "session not found")
}

func TestMemoryStore_List(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := sampleSession()
	b := delegate.NewSession()
	require.NoError(t, store.Save(ctx, a))
	require.NoError(t, store.Save(ctx, b))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
