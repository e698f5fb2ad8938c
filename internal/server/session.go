package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

// Conversations are kept for a day of inactivity, then expire.
const sessionTTL = 24 * time.Hour

// SessionStore keeps per-session conversation history in Redis. The
// conversation is the only state that survives across runs; everything else
// is per-query.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(addr, password string, db int) *SessionStore {
	return &SessionStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}

func key(sessionID string) string {
	return "session:" + sessionID
}

// Conversation returns the session's history, oldest turn first. A missing
// session is an empty conversation, not an error.
func (s *SessionStore) Conversation(ctx context.Context, sessionID string) ([]workflow.Turn, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	var turns []workflow.Turn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", sessionID, err)
	}
	return turns, nil
}

// Append adds turns to the session history and refreshes its TTL.
func (s *SessionStore) Append(ctx context.Context, sessionID string, turns ...workflow.Turn) error {
	existing, err := s.Conversation(ctx, sessionID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(append(existing, turns...))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(sessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("saving session %s: %w", sessionID, err)
	}
	return nil
}
