package memory

import (
	"context"
	"slices"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; ok {
		return storage.ErrDuplicate
	}
	if e.Version == 0 {
		e.Version = 1
	}
	s.events[e.ID] = e.Clone()
	s.eventOrder = append(s.eventOrder, e.ID)
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := e.Clone()
	return &out, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.events[e.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if cur.Version != e.Version {
		return storage.ErrStale
	}
	e.Version++
	// creator and creation time are immutable
	e.CreatorID = cur.CreatorID
	e.CreatedAt = cur.CreatedAt
	s.events[e.ID] = e.Clone()
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.events, id)
	s.eventOrder = slices.DeleteFunc(s.eventOrder, func(v string) bool { return v == id })
	return nil
}

func (s *Store) ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	return s.listEvents(func(e *model.Event) bool { return e.CreatorID == userID }), nil
}

func (s *Store) ListEventsByParticipant(ctx context.Context, userID string) ([]model.Event, error) {
	return s.listEvents(func(e *model.Event) bool { return e.HasParticipant(userID) }), nil
}

func (s *Store) listEvents(match func(*model.Event) bool) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, id := range s.eventOrder {
		e := s.events[id]
		if match(&e) {
			out = append(out, e.Clone())
		}
	}
	return out
}
