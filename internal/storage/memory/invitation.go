package memory

import (
	"context"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

func (s *Store) CreateInvitation(ctx context.Context, inv *model.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[inv.ID]; ok {
		return storage.ErrDuplicate
	}
	if inv.Status == model.InvitationPending && s.pendingLocked(inv.EventID, inv.ToID) != nil {
		return storage.ErrDuplicate
	}
	if inv.Version == 0 {
		inv.Version = 1
	}
	s.invitations[inv.ID] = *inv
	s.invitationOrder = append(s.invitationOrder, inv.ID)
	return nil
}

func (s *Store) GetInvitation(ctx context.Context, id string) (*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &inv, nil
}

func (s *Store) PendingInvitation(ctx context.Context, eventID, toID string) (*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if inv := s.pendingLocked(eventID, toID); inv != nil {
		return inv, nil
	}
	return nil, storage.ErrNotFound
}

func (s *Store) UpdateInvitation(ctx context.Context, inv *model.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.invitations[inv.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if cur.Version != inv.Version {
		return storage.ErrStale
	}
	if inv.Status == model.InvitationPending && cur.Status != model.InvitationPending {
		if other := s.pendingLocked(inv.EventID, inv.ToID); other != nil && other.ID != inv.ID {
			return storage.ErrDuplicate
		}
	}
	inv.Version++
	s.invitations[inv.ID] = *inv
	return nil
}

func (s *Store) ListInvitations(ctx context.Context, toID string, status model.InvitationStatus) ([]model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Invitation
	// newest first; creation order breaks timestamp ties
	for i := len(s.invitationOrder) - 1; i >= 0; i-- {
		inv := s.invitations[s.invitationOrder[i]]
		if inv.ToID != toID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

// caller holds s.mu
func (s *Store) pendingLocked(eventID, toID string) *model.Invitation {
	for _, id := range s.invitationOrder {
		inv := s.invitations[id]
		if inv.EventID == eventID && inv.ToID == toID && inv.Status == model.InvitationPending {
			return &inv
		}
	}
	return nil
}
