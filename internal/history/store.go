// Package history is the session-scoped key-value collaborator: it
// keeps the latest breakdown per browser session in Redis so the form
// layer can reload it without hitting Postgres. It only ever stores
// already-validated breakdowns.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

const (
	sessionKeyPrefix = "sdlc:session:" // sdlc:session:{session_id}:breakdown
	sessionTTL       = 7 * 24 * time.Hour
)

var ErrNotFound = errors.New("no breakdown stored for session")

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save stores b as the session's latest breakdown and returns the
// session id, minting one when the caller sends none. Saving again
// under the same session overwrites and refreshes the TTL.
func (s *Store) Save(ctx context.Context, sessionID string, b *domain.Breakdown) (string, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal breakdown: %w", err)
	}

	if err := s.client.Set(ctx, s.sessionKey(sessionID), data, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("store session breakdown: %w", err)
	}
	return sessionID, nil
}

// Latest loads the breakdown most recently saved for a session.
func (s *Store) Latest(ctx context.Context, sessionID string) (*domain.Breakdown, error) {
	data, err := s.client.Get(ctx, s.sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session breakdown: %w", err)
	}

	var b domain.Breakdown
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, fmt.Errorf("unmarshal session breakdown: %w", err)
	}
	return &b, nil
}

func (s *Store) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s:breakdown", sessionKeyPrefix, sessionID)
}
