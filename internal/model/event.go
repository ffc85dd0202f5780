package model

import (
	"slices"
	"time"
)

// Event is a scheduling proposal with candidate dates. Participants has set
// semantics; insertion order is kept for display.
type Event struct {
	ID           string
	Title        string
	Description  string
	DateOptions  []time.Time
	Participants []string
	CreatorID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
}

func (e *Event) IsCreator(userID string) bool {
	return e.CreatorID == userID
}

func (e *Event) HasParticipant(userID string) bool {
	return slices.Contains(e.Participants, userID)
}

// CanView reports whether userID may read the event.
func (e *Event) CanView(userID string) bool {
	return e.IsCreator(userID) || e.HasParticipant(userID)
}

// AddParticipant adds userID unless already present and reports whether the set changed.
func (e *Event) AddParticipant(userID string) bool {
	if e.HasParticipant(userID) {
		return false
	}
	e.Participants = append(e.Participants, userID)
	return true
}

// RemoveParticipant drops every occurrence of userID and reports whether the set changed.
func (e *Event) RemoveParticipant(userID string) bool {
	n := len(e.Participants)
	e.Participants = slices.DeleteFunc(e.Participants, func(p string) bool { return p == userID })
	return len(e.Participants) != n
}

// Clone returns a deep copy, so stores never share slices with callers.
func (e Event) Clone() Event {
	e.DateOptions = slices.Clone(e.DateOptions)
	e.Participants = slices.Clone(e.Participants)
	return e
}

// UniqueIDs drops blanks and repeats, keeping first-seen order.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
