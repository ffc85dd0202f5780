package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/model"
)

// Creator A invites B and C; B accepts and C declines.
func TestInviteRespondScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "A", "Ann")
	b := f.user(t, "B", "Ben")
	c := f.user(t, "C", "Cat")
	e := f.event(t, a)

	res, err := f.coordinator.Invite(ctx, a, e.ID, []string{"B", "C"}, "")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if got := f.participants(t, e.ID); len(got) != 2 {
		t.Fatalf("expected 2 participants after invite, got %v", got)
	}

	invB, err := f.coordinator.Respond(ctx, b, res.Outcomes[0].InvitationID, "accepted")
	if err != nil || invB.Status != model.InvitationAccepted {
		t.Fatalf("accept: %+v %v", invB, err)
	}
	invC, err := f.coordinator.Respond(ctx, c, res.Outcomes[1].InvitationID, "declined")
	if err != nil || invC.Status != model.InvitationDeclined {
		t.Fatalf("decline: %+v %v", invC, err)
	}

	got := f.participants(t, e.ID)
	if len(got) != 1 || got[0] != "B" {
		t.Fatalf("expected only B left, got %v", got)
	}
}

// B votes for option 0 and then moves the vote to option 1.
func TestVoteMoves(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "A", "Ann")
	b := f.user(t, "B", "Ben")
	e := f.event(t, a)

	p, err := f.engine.CreatePoll(ctx, a, e.ID, "Which date?", []string{"T1", "T2"})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if _, err := f.engine.Vote(ctx, b, p.ID, 0); err != nil {
		t.Fatalf("vote 0: %v", err)
	}
	p, err = f.engine.Vote(ctx, b, p.ID, 1)
	if err != nil {
		t.Fatalf("vote 1: %v", err)
	}
	if len(p.Options[0].Votes) != 0 {
		t.Fatalf("option 0 should be empty, got %v", p.Options[0].Votes)
	}
	if len(p.Options[1].Votes) != 1 || p.Options[1].Votes[0] != "B" {
		t.Fatalf("option 1 should hold B, got %v", p.Options[1].Votes)
	}
}

func TestVoteOutOfRangeLeavesPollUnchanged(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "A", "Ann")
	e := f.event(t, a)
	p, err := f.engine.CreatePoll(ctx, a, e.ID, "Which date?", []string{"T1", "T2"})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if _, err := f.engine.Vote(ctx, a, p.ID, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	before, err := f.store.GetPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("load poll: %v", err)
	}

	for _, idx := range []int{-1, 2, 99} {
		t.Run(fmt.Sprintf("index %d", idx), func(t *testing.T) {
			_, err := f.engine.Vote(ctx, a, p.ID, idx)
			wantCode(t, err, apperr.CodeInvalidInput)
		})
	}

	after, err := f.store.GetPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("load poll: %v", err)
	}
	if after.Version != before.Version || after.VotedOption("A") != 1 || after.TotalVotes() != 1 {
		t.Fatalf("poll changed: before %+v after %+v", before, after)
	}

	_, err = f.engine.Vote(ctx, a, "missing", 0)
	wantCode(t, err, apperr.CodeNotFound)
}

func TestCreatePollValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "A", "Ann")
	outsider := f.user(t, "Z", "Zed")
	e := f.event(t, a)

	tests := []struct {
		name     string
		eventID  string
		question string
		options  []string
		code     apperr.Code
	}{
		{"blank question", e.ID, " ", []string{"x", "y"}, apperr.CodeInvalidInput},
		{"one option", e.ID, "q", []string{"x"}, apperr.CodeInvalidInput},
		{"blank option", e.ID, "q", []string{"x", " "}, apperr.CodeInvalidInput},
		{"missing event", "missing", "q", []string{"x", "y"}, apperr.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.CreatePoll(ctx, a, tt.eventID, tt.question, tt.options)
			wantCode(t, err, tt.code)
		})
	}

	// poll creation is open to anyone signed in
	if _, err := f.engine.CreatePoll(ctx, outsider, e.ID, "q", []string{"x", "y"}); err != nil {
		t.Fatalf("outsider create: %v", err)
	}
	polls, err := f.engine.ListByEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(polls) != 1 || polls[0].CreatedBy != "Z" {
		t.Fatalf("unexpected polls: %+v", polls)
	}

	_, err = f.engine.ListByEvent(ctx, "missing")
	wantCode(t, err, apperr.CodeNotFound)
}

func TestResultsCompactMatchesFull(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "A", "Ann")
	b := f.user(t, "B", "Ben")
	e := f.event(t, a)
	p, err := f.engine.CreatePoll(ctx, a, e.ID, "Which date?", []string{"T1", "T2", "T3"})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	votes := []struct {
		who model.Identity
		idx int
	}{
		{a, 0},
		{b, 0},
		{model.Identity{UserID: "gone"}, 2},
	}
	for _, v := range votes {
		if _, err := f.engine.Vote(ctx, v.who, p.ID, v.idx); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}

	compact, err := f.engine.Results(ctx, p.ID, true)
	if err != nil {
		t.Fatalf("compact results: %v", err)
	}
	full, err := f.engine.Results(ctx, p.ID, false)
	if err != nil {
		t.Fatalf("full results: %v", err)
	}

	for i := range compact.Options {
		if compact.Options[i].Voters != nil {
			t.Fatalf("compact option %d leaks voters: %+v", i, compact.Options[i].Voters)
		}
		if compact.Options[i].Count != full.Options[i].Count || full.Options[i].Count != len(full.Options[i].Voters) {
			t.Fatalf("option %d count mismatch: compact %d full %d voters %d",
				i, compact.Options[i].Count, full.Options[i].Count, len(full.Options[i].Voters))
		}
	}
	if full.Options[0].Voters[0].Name != "Ann" {
		t.Fatalf("voter not resolved: %+v", full.Options[0].Voters[0])
	}
	if v := full.Options[2].Voters[0]; v.ID != "gone" || v.Name != "" {
		t.Fatalf("unknown voter should keep its id only: %+v", v)
	}
	if full.Creator.Name != "Ann" || full.Event == nil || full.Event.Title != e.Title {
		t.Fatalf("results not enriched: %+v", full)
	}

	_, err = f.engine.Results(ctx, "missing", true)
	wantCode(t, err, apperr.CodeNotFound)
}

func TestConcurrentVotesLoseNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "A", "Ann")
	e := f.event(t, a)
	p, err := f.engine.CreatePoll(ctx, a, e.ID, "Which date?", []string{"T1", "T2"})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	const voters = 30
	var wg sync.WaitGroup
	errs := make(chan error, voters*2)
	for i := 0; i < voters; i++ {
		who := model.Identity{UserID: fmt.Sprintf("voter-%02d", i)}
		wg.Add(1)
		go func() {
			defer wg.Done()
			// each voter changes their mind once
			if _, err := f.engine.Vote(ctx, who, p.ID, 0); err != nil {
				errs <- err
				return
			}
			_, err := f.engine.Vote(ctx, who, p.ID, i%2)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("vote: %v", err)
		}
	}

	final, err := f.store.GetPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("load poll: %v", err)
	}
	if final.TotalVotes() != voters {
		t.Fatalf("expected %d votes, got %d", voters, final.TotalVotes())
	}
	for i := 0; i < voters; i++ {
		id := fmt.Sprintf("voter-%02d", i)
		if got := final.VotedOption(id); got != i%2 {
			t.Fatalf("%s voted %d, expected %d", id, got, i%2)
		}
	}
}
