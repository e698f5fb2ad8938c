package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

func newFakeOllama(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-model", 5*time.Second)
}

func TestCompleteReturnsModelText(t *testing.T) {
	c := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		json.NewEncoder(w).Encode(generateResponse{Response: "hello back", Done: true})
	})

	got, err := c.Complete(context.Background(), nil, "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello back", got)
}

func TestCompleteIncludesConversation(t *testing.T) {
	var seen string
	c := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		seen = req.Prompt
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	})

	conv := []workflow.Turn{
		{Role: workflow.RoleUser, Text: "what is pgvector?"},
		{Role: workflow.RoleAssistant, Text: "a Postgres extension"},
	}
	_, err := c.Complete(context.Background(), conv, "and who maintains it?")
	require.NoError(t, err)
	assert.Contains(t, seen, "user: what is pgvector?")
	assert.Contains(t, seen, "assistant: a Postgres extension")
}

func TestGradeRelevanceParsesBinaryScore(t *testing.T) {
	for reply, want := range map[string]bool{
		"yes":          true,
		"Yes.":         true,
		"YES, clearly": true,
		"no":           false,
		"No.":          false,
		"maybe":        false,
	} {
		c := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(generateResponse{Response: reply, Done: true})
		})
		got, err := c.GradeRelevance(context.Background(), "q", "chunk")
		require.NoError(t, err)
		assert.Equal(t, want, got, "reply %q", reply)
	}
}

func TestGenerateStreamsFragments(t *testing.T) {
	c := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.True(t, req.Stream)
		enc := json.NewEncoder(w)
		for _, word := range []string{"stream", "ed ", "answer"} {
			enc.Encode(generateResponse{Response: word})
		}
		enc.Encode(generateResponse{Done: true})
	})

	var frags []string
	got, err := c.Generate(context.Background(), nil, "q", nil, func(f string) {
		frags = append(frags, f)
	})
	require.NoError(t, err)
	assert.Equal(t, "streamed answer", got)
	assert.Equal(t, []string{"stream", "ed ", "answer"}, frags)
}

func TestGenerateIncludesChunkContext(t *testing.T) {
	var seen string
	c := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		seen = req.Prompt
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	})

	chunks := []workflow.Chunk{{Text: "refunds within 30 days", Source: "policy.pdf", Index: 2}}
	_, err := c.Generate(context.Background(), nil, "refund policy?", chunks, nil)
	require.NoError(t, err)
	assert.Contains(t, seen, "policy.pdf")
	assert.Contains(t, seen, "refunds within 30 days")
}

func TestServerErrorSurfaces(t *testing.T) {
	c := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	_, err := c.Complete(context.Background(), nil, "anything")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "model not found"), fmt.Sprintf("unexpected error: %v", err))
}
