package storage

import (
	"context"
	"errors"
	"time"

	"event-polling-api/internal/model"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrStale indicates a versioned write lost against a concurrent writer.
	ErrStale = errors.New("record version is stale")
	// ErrDuplicate indicates a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// Directory is the identity lookup the core consumes.
type Directory interface {
	ResolveUser(ctx context.Context, id string) (model.Profile, error)
	// FindUsers matches query case-insensitively against name or email.
	FindUsers(ctx context.Context, query string, limit int) ([]model.Profile, error)
}

type RefreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// EventStore persists events. UpdateEvent only succeeds when e.Version matches
// the stored version; on success e.Version is advanced.
type EventStore interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error)
	ListEventsByParticipant(ctx context.Context, userID string) ([]model.Event, error)
}

// InvitationStore persists invitations. CreateInvitation returns ErrDuplicate
// when a pending invitation already exists for the same event and invitee.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, inv *model.Invitation) error
	GetInvitation(ctx context.Context, id string) (*model.Invitation, error)
	PendingInvitation(ctx context.Context, eventID, toID string) (*model.Invitation, error)
	UpdateInvitation(ctx context.Context, inv *model.Invitation) error
	// ListInvitations returns invitations addressed to toID, newest first.
	// An empty status matches every status.
	ListInvitations(ctx context.Context, toID string, status model.InvitationStatus) ([]model.Invitation, error)
}

// PollStore persists polls. UpdatePollVotes writes the vote sets of every
// option as one versioned update.
type PollStore interface {
	CreatePoll(ctx context.Context, p *model.Poll) error
	GetPoll(ctx context.Context, id string) (*model.Poll, error)
	UpdatePollVotes(ctx context.Context, p *model.Poll) error
	ListPollsByEvent(ctx context.Context, eventID string) ([]model.Poll, error)
}

// Store is the full persistence surface acquired once at startup.
type Store interface {
	UserStore
	Directory
	RefreshTokenStore
	EventStore
	InvitationStore
	PollStore
	Close()
}
