// Package memory is an in-process implementation of storage.Store.
package memory

import (
	"sync"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every collection behind one lock. Records are copied on the way
// in and out so callers never alias stored slices.
type Store struct {
	mu sync.RWMutex

	users       map[string]model.User
	emails      map[string]string
	tokens      map[string]model.RefreshToken
	events      map[string]model.Event
	invitations map[string]model.Invitation
	polls       map[string]model.Poll

	// creation order per collection
	eventOrder      []string
	invitationOrder []string
	pollOrder       []string
}

func New() *Store {
	return &Store{
		users:       make(map[string]model.User),
		emails:      make(map[string]string),
		tokens:      make(map[string]model.RefreshToken),
		events:      make(map[string]model.Event),
		invitations: make(map[string]model.Invitation),
		polls:       make(map[string]model.Poll),
	}
}

func (s *Store) Close() {}
