// Package storagetest holds behavior checks shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

// Run exercises st against the storage contract. Records use fresh ids so
// the suite can run against a shared database.
func Run(t *testing.T, st storage.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, st) })
	t.Run("refresh tokens", func(t *testing.T) { testRefreshTokens(t, st) })
	t.Run("events", func(t *testing.T) { testEvents(t, st) })
	t.Run("invitations", func(t *testing.T) { testInvitations(t, st) })
	t.Run("polls", func(t *testing.T) { testPolls(t, st) })
}

func id() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func wantErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func newUser(t *testing.T, st storage.Store, name string) model.User {
	t.Helper()
	u := model.User{
		ID:           id(),
		Email:        name + "-" + id()[:8] + "@test.com",
		PasswordHash: "hash",
		Name:         name,
		CreatedAt:    now(),
	}
	if err := st.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func testUsers(t *testing.T, st storage.Store) {
	ctx := context.Background()
	u := newUser(t, st, "Zelda")

	dup := model.User{ID: id(), Email: u.Email, PasswordHash: "x", Name: "Other", CreatedAt: now()}
	wantErr(t, st.CreateUser(ctx, &dup), storage.ErrDuplicate)

	got, err := st.UserByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.ID != u.ID || got.Name != "Zelda" {
		t.Fatalf("unexpected user %+v", got)
	}

	p, err := st.ResolveUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p != u.Profile() {
		t.Fatalf("profile = %+v, want %+v", p, u.Profile())
	}
	_, err = st.ResolveUser(ctx, id())
	wantErr(t, err, storage.ErrNotFound)

	found, err := st.FindUsers(ctx, "zeLD", 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	hit := false
	for _, f := range found {
		hit = hit || f.ID == u.ID
	}
	if !hit {
		t.Fatalf("expected %s in %+v", u.ID, found)
	}
}

func testRefreshTokens(t *testing.T, st storage.Store) {
	ctx := context.Background()
	u := newUser(t, st, "Token")
	exp := now().Add(time.Hour)

	hash := "hash-" + id()
	tokID, err := st.CreateRefreshToken(ctx, u.ID, hash, exp)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	rt, err := st.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	if rt.ID != tokID || rt.UserID != u.ID || rt.Revoked {
		t.Fatalf("unexpected token %+v", rt)
	}

	newID, newHash := id(), "hash-"+id()
	if err := st.RotateRefreshToken(ctx, tokID, newID, u.ID, newHash, exp); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	wantErr(t, st.RotateRefreshToken(ctx, tokID, id(), u.ID, "hash-"+id(), exp), storage.ErrNotFound)

	old, _ := st.GetRefreshTokenByHash(ctx, hash)
	if !old.Revoked || old.ReplacedBy == nil || *old.ReplacedBy != newID {
		t.Fatalf("old token not rotated: %+v", old)
	}

	if err := st.RevokeAllRefreshTokens(ctx, u.ID); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	cur, _ := st.GetRefreshTokenByHash(ctx, newHash)
	if !cur.Revoked {
		t.Fatal("expected replacement token revoked")
	}
}

func testEvents(t *testing.T, st storage.Store) {
	ctx := context.Background()
	creator, guest := id(), id()
	at := now()
	e := model.Event{
		ID:           id(),
		Title:        "Dinner",
		DateOptions:  []time.Time{at.Add(24 * time.Hour), at.Add(48 * time.Hour)},
		Participants: []string{guest},
		CreatorID:    creator,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	if err := st.CreateEvent(ctx, &e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Version != 1 {
		t.Fatalf("version = %d, want 1", e.Version)
	}

	got, err := st.GetEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Dinner" || len(got.DateOptions) != 2 || !got.DateOptions[0].Equal(e.DateOptions[0]) {
		t.Fatalf("unexpected event %+v", got)
	}

	stale := *got
	got.Title = "Late dinner"
	got.AddParticipant(creator)
	if err := st.UpdateEvent(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("version after update = %d, want 2", got.Version)
	}
	stale.Title = "lost write"
	wantErr(t, st.UpdateEvent(ctx, &stale), storage.ErrStale)

	missing := model.Event{ID: id(), Version: 1}
	wantErr(t, st.UpdateEvent(ctx, &missing), storage.ErrNotFound)

	again, _ := st.GetEvent(ctx, e.ID)
	if again.Title != "Late dinner" || len(again.Participants) != 2 || again.Participants[0] != guest {
		t.Fatalf("unexpected event after update %+v", again)
	}

	byGuest, err := st.ListEventsByParticipant(ctx, guest)
	if err != nil || len(byGuest) != 1 || byGuest[0].ID != e.ID {
		t.Fatalf("by participant: %v %+v", err, byGuest)
	}
	byCreator, err := st.ListEventsByCreator(ctx, creator)
	if err != nil || len(byCreator) != 1 {
		t.Fatalf("by creator: %v %+v", err, byCreator)
	}

	if err := st.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = st.GetEvent(ctx, e.ID)
	wantErr(t, err, storage.ErrNotFound)
	wantErr(t, st.DeleteEvent(ctx, e.ID), storage.ErrNotFound)
}

func testInvitations(t *testing.T, st storage.Store) {
	ctx := context.Background()
	eventID, from, to := id(), id(), id()
	at := now()

	first := model.Invitation{
		ID: id(), EventID: eventID, FromID: from, ToID: to,
		Status: model.InvitationPending, CreatedAt: at, UpdatedAt: at,
	}
	if err := st.CreateInvitation(ctx, &first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := first
	second.ID = id()
	wantErr(t, st.CreateInvitation(ctx, &second), storage.ErrDuplicate)

	pending, err := st.PendingInvitation(ctx, eventID, to)
	if err != nil || pending.ID != first.ID {
		t.Fatalf("pending: %v %+v", err, pending)
	}

	pending.Status = model.InvitationAccepted
	pending.UpdatedAt = at.Add(time.Second)
	if err := st.UpdateInvitation(ctx, pending); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, err = st.PendingInvitation(ctx, eventID, to)
	wantErr(t, err, storage.ErrNotFound)

	stale := first
	stale.Status = model.InvitationDeclined
	wantErr(t, st.UpdateInvitation(ctx, &stale), storage.ErrStale)

	// a resolved invitation frees the slot for a new pending one
	second.CreatedAt = at.Add(2 * time.Second)
	second.UpdatedAt = second.CreatedAt
	if err := st.CreateInvitation(ctx, &second); err != nil {
		t.Fatalf("re-invite: %v", err)
	}

	all, err := st.ListInvitations(ctx, to, "")
	if err != nil || len(all) != 2 || all[0].ID != second.ID {
		t.Fatalf("list all: %v %+v", err, all)
	}
	accepted, err := st.ListInvitations(ctx, to, model.InvitationAccepted)
	if err != nil || len(accepted) != 1 || accepted[0].ID != first.ID {
		t.Fatalf("list accepted: %v %+v", err, accepted)
	}
}

func testPolls(t *testing.T, st storage.Store) {
	ctx := context.Background()
	at := now()
	p := model.Poll{
		ID:        id(),
		EventID:   id(),
		Question:  "When?",
		Options:   []model.PollOption{{Text: "Fri"}, {Text: "Sat"}},
		CreatedBy: id(),
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := st.CreatePoll(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.GetPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	stale := got.Clone()
	voterA, voterB := id(), id()
	if err := got.CastVote(1, voterA); err != nil {
		t.Fatal(err)
	}
	if err := got.CastVote(1, voterB); err != nil {
		t.Fatal(err)
	}
	if err := st.UpdatePollVotes(ctx, got); err != nil {
		t.Fatalf("update votes: %v", err)
	}
	if err := stale.CastVote(0, voterA); err != nil {
		t.Fatal(err)
	}
	wantErr(t, st.UpdatePollVotes(ctx, &stale), storage.ErrStale)

	again, _ := st.GetPoll(ctx, p.ID)
	votes := again.Options[1].Votes
	if len(again.Options[0].Votes) != 0 || len(votes) != 2 || votes[0] != voterA || votes[1] != voterB {
		t.Fatalf("unexpected votes %+v", again.Options)
	}

	list, err := st.ListPollsByEvent(ctx, p.EventID)
	if err != nil || len(list) != 1 || list[0].Options[1].Text != "Sat" {
		t.Fatalf("list: %v %+v", err, list)
	}
	_, err = st.GetPoll(ctx, id())
	wantErr(t, err, storage.ErrNotFound)
}
