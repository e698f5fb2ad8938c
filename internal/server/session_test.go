package server

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

func newSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewSessionStore(mr.Addr(), "", 0)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestUnknownSessionIsEmptyConversation(t *testing.T) {
	store, _ := newSessionStore(t)

	turns, err := store.Conversation(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAppendRoundTrip(t *testing.T) {
	store, _ := newSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1",
		workflow.Turn{Role: workflow.RoleUser, Text: "hi"},
		workflow.Turn{Role: workflow.RoleAssistant, Text: "hello"},
	))
	require.NoError(t, store.Append(ctx, "s1",
		workflow.Turn{Role: workflow.RoleUser, Text: "more"},
	))

	turns, err := store.Conversation(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "hi", turns[0].Text)
	assert.Equal(t, "more", turns[2].Text)
}

func TestSessionsAreIsolated(t *testing.T) {
	store, _ := newSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", workflow.Turn{Role: workflow.RoleUser, Text: "for a"}))
	turns, err := store.Conversation(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSessionHasTTL(t *testing.T) {
	store, mr := newSessionStore(t)

	require.NoError(t, store.Append(context.Background(), "s1", workflow.Turn{Role: workflow.RoleUser, Text: "hi"}))
	ttl := mr.TTL(key("s1"))
	assert.Equal(t, sessionTTL, ttl)
}
