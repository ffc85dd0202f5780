package memory

import (
	"context"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

func (s *Store) CreatePoll(ctx context.Context, p *model.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[p.ID]; ok {
		return storage.ErrDuplicate
	}
	if p.Version == 0 {
		p.Version = 1
	}
	s.polls[p.ID] = p.Clone()
	s.pollOrder = append(s.pollOrder, p.ID)
	return nil
}

func (s *Store) GetPoll(ctx context.Context, id string) (*model.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.polls[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (s *Store) UpdatePollVotes(ctx context.Context, p *model.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.polls[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if cur.Version != p.Version {
		return storage.ErrStale
	}
	if len(cur.Options) != len(p.Options) {
		return storage.ErrStale
	}
	next := cur.Clone()
	for i := range next.Options {
		next.Options[i].Votes = append([]string(nil), p.Options[i].Votes...)
	}
	next.Version++
	next.UpdatedAt = p.UpdatedAt
	s.polls[p.ID] = next
	p.Version = next.Version
	return nil
}

func (s *Store) ListPollsByEvent(ctx context.Context, eventID string) ([]model.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Poll
	for _, id := range s.pollOrder {
		if p := s.polls[id]; p.EventID == eventID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}
