package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

func (s *Store) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.putToken(id, userID, tokenHash, expiresAt)
	return id, nil
}

func (s *Store) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rt := range s.tokens {
		if rt.TokenHash == tokenHash {
			out := rt
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tokens[oldID]
	if !ok || old.Revoked {
		return storage.ErrNotFound
	}
	old.Revoked = true
	old.ReplacedBy = &newID
	s.tokens[oldID] = old
	s.putToken(newID, userID, newHash, newExpiry)
	return nil
}

func (s *Store) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rt := range s.tokens {
		if rt.UserID == userID && !rt.Revoked {
			rt.Revoked = true
			s.tokens[id] = rt
		}
	}
	return nil
}

// caller holds s.mu
func (s *Store) putToken(id, userID, tokenHash string, expiresAt time.Time) {
	s.tokens[id] = model.RefreshToken{
		ID:        id,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}
