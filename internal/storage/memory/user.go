package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := s.emails[email]; ok {
		return storage.ErrDuplicate
	}
	if _, ok := s.users[u.ID]; ok {
		return storage.ErrDuplicate
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	s.emails[email] = u.ID
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, storage.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Store) ResolveUser(ctx context.Context, id string) (model.Profile, error) {
	u, err := s.UserByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	return u.Profile(), nil
}

func (s *Store) FindUsers(ctx context.Context, query string, limit int) ([]model.Profile, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Profile
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u.Profile())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
