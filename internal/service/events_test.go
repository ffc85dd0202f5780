package service_test

import (
	"context"
	"testing"
	"time"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/service"
)

func TestCreateEventValidation(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice", "Alice")
	day := []time.Time{time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		in   service.CreateEventInput
		code apperr.Code
	}{
		{"blank title", service.CreateEventInput{Title: "  ", DateOptions: day}, apperr.CodeInvalidInput},
		{"no dates", service.CreateEventInput{Title: "Dinner"}, apperr.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.registry.Create(context.Background(), alice, tt.in)
			wantCode(t, err, tt.code)
		})
	}

	e, err := f.registry.Create(context.Background(), alice, service.CreateEventInput{
		Title: "Dinner", DateOptions: day, Participants: []string{"bob", "bob", "", "carol"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.CreatorID != "alice" || e.HasParticipant("alice") {
		t.Fatalf("creator should be alice and not a participant: %+v", e)
	}
	if len(e.Participants) != 2 {
		t.Fatalf("expected deduplicated participants, got %v", e.Participants)
	}
}

func TestUpdateAndDeleteAreCreatorOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice", "Alice")
	bob := f.user(t, "bob", "Bob")
	e := f.event(t, alice, "bob")

	title := "Hijacked"
	_, err := f.registry.Update(ctx, bob, e.ID, service.EventPatch{Title: &title})
	wantCode(t, err, apperr.CodeForbidden)

	err = f.registry.Delete(ctx, bob, e.ID)
	wantCode(t, err, apperr.CodeForbidden)

	_, err = f.registry.Update(ctx, alice, "missing", service.EventPatch{Title: &title})
	wantCode(t, err, apperr.CodeNotFound)

	got, err := f.registry.Get(ctx, alice, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Event.Title != "Team offsite" {
		t.Fatalf("title changed by non-creator: %q", got.Event.Title)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice", "Alice")
	e := f.event(t, alice, "bob")

	desc := "new description"
	updated, err := f.registry.Update(ctx, alice, e.ID, service.EventPatch{Description: &desc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != e.Title || updated.Description != desc {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if updated.Version <= e.Version {
		t.Fatalf("version did not advance: %d -> %d", e.Version, updated.Version)
	}
	if updated.CreatorID != "alice" || len(updated.Participants) != 1 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	blank := " "
	_, err = f.registry.Update(ctx, alice, e.ID, service.EventPatch{Title: &blank})
	wantCode(t, err, apperr.CodeInvalidInput)

	none := []time.Time{}
	_, err = f.registry.Update(ctx, alice, e.ID, service.EventPatch{DateOptions: &none})
	wantCode(t, err, apperr.CodeInvalidInput)
}

func TestGetVisibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice", "Alice")
	bob := f.user(t, "bob", "Bob")
	mallory := f.user(t, "mallory", "Mallory")
	e := f.event(t, alice, "bob", "ghost")

	_, err := f.registry.Get(ctx, mallory, e.ID)
	wantCode(t, err, apperr.CodeForbidden)

	_, err = f.registry.Get(ctx, bob, "missing")
	wantCode(t, err, apperr.CodeNotFound)

	d, err := f.registry.Get(ctx, bob, e.ID)
	if err != nil {
		t.Fatalf("get as participant: %v", err)
	}
	if d.Creator.Name != "Alice" {
		t.Fatalf("creator not resolved: %+v", d.Creator)
	}
	if len(d.Participants) != 2 || d.Participants[0].Name != "Bob" || d.Participants[1].ID != "ghost" || d.Participants[1].Name != "" {
		t.Fatalf("unexpected participants: %+v", d.Participants)
	}
}

func TestListEvents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice", "Alice")
	bob := f.user(t, "bob", "Bob")
	first := f.event(t, alice, "bob")
	second := f.event(t, alice)

	mine, err := f.registry.ListByCreator(ctx, alice)
	if err != nil {
		t.Fatalf("list by creator: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != first.ID || mine[1].ID != second.ID {
		t.Fatalf("expected creation order, got %+v", mine)
	}

	invited, err := f.registry.ListByParticipant(ctx, bob)
	if err != nil {
		t.Fatalf("list by participant: %v", err)
	}
	if len(invited) != 1 || invited[0].ID != first.ID {
		t.Fatalf("unexpected participant events: %+v", invited)
	}
}

func TestDeleteLeavesPollsBehind(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice", "Alice")
	e := f.event(t, alice)
	p, err := f.engine.CreatePoll(ctx, alice, e.ID, "Which day?", []string{"Sat", "Sun"})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	if err := f.registry.Delete(ctx, alice, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = f.registry.Get(ctx, alice, e.ID)
	wantCode(t, err, apperr.CodeNotFound)

	res, err := f.engine.Results(ctx, p.ID, true)
	if err != nil {
		t.Fatalf("results after delete: %v", err)
	}
	if res.Event != nil {
		t.Fatalf("expected no event summary, got %+v", res.Event)
	}
}
