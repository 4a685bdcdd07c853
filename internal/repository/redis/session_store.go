package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/grandaincontri/incontri-backend/internal/repository"
)

type sessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSessionStore(client *goredis.Client, ttl time.Duration) repository.SessionStore {
	return &sessionStore{client: client, ttl: ttl}
}

func authKey(sessionID string) string {
	return "session:" + sessionID + ":auth"
}

func formKey(sessionID string) string {
	return "session:" + sessionID + ":form"
}

func (s *sessionStore) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	val, err := s.client.Get(ctx, authKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("session lookup failed: %w", err)
	}
	return val == "1", nil
}

func (s *sessionStore) SetAuthenticated(ctx context.Context, sessionID string) error {
	if err := s.client.Set(ctx, authKey(sessionID), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark session authenticated: %w", err)
	}
	return nil
}

func (s *sessionStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, authKey(sessionID), formKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *sessionStore) PutFormState(ctx context.Context, sessionID string, state *repository.FormState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode form state: %w", err)
	}
	if err := s.client.Set(ctx, formKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store form state: %w", err)
	}
	return nil
}

// PopFormState is read-once: GETDEL hands the state over and clears it in
// a single round-trip, so two concurrent readers can never both see it.
func (s *sessionStore) PopFormState(ctx context.Context, sessionID string) (*repository.FormState, error) {
	payload, err := s.client.GetDel(ctx, formKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop form state: %w", err)
	}
	var state repository.FormState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("failed to decode form state: %w", err)
	}
	return &state, nil
}
