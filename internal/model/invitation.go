package model

import (
	"strings"
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// ParseInvitationStatus accepts any case; ok is false for unknown labels.
func ParseInvitationStatus(s string) (InvitationStatus, bool) {
	switch st := InvitationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return st, true
	default:
		return "", false
	}
}

// IsResponse reports whether s is a status an invitee may answer with.
func (s InvitationStatus) IsResponse() bool {
	return s == InvitationAccepted || s == InvitationDeclined
}

type Invitation struct {
	ID        string
	EventID   string
	FromID    string
	ToID      string
	Message   string
	Status    InvitationStatus
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// Per-target outcome labels of an invite batch.
const (
	OutcomeInvited        = "invited"
	OutcomeAlreadyInvited = "already_invited"
	OutcomeUserNotFound   = "user_not_found"
)

type InviteOutcome struct {
	UserID       string
	Status       string
	InvitationID string
}
