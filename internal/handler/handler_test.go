package handler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/fieldmaskpb"

	"event-polling-api/internal/handler"
	"event-polling-api/internal/middleware"
	"event-polling-api/internal/model"
	"event-polling-api/internal/rpc"
	"event-polling-api/internal/service"
	"event-polling-api/internal/storage/memory"
)

const secret = "test-secret"

func setup(t *testing.T) *handler.Handler {
	t.Helper()
	st := memory.New()
	t.Cleanup(st.Close)
	return handler.New(st, secret, service.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func authedCtx(uid string) context.Context {
	return middleware.WithIdentity(context.Background(), model.Identity{UserID: uid})
}

func registerUser(t *testing.T, h *handler.Handler, name string) (userID string) {
	t.Helper()
	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	rr, err := h.Register(context.Background(), &rpc.RegisterRequest{
		Email: email, Password: "testpass123", Name: name,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return rr.UserId
}

func createEvent(t *testing.T, h *handler.Handler, ctx context.Context, participants ...string) *rpc.Event {
	t.Helper()
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	cr, err := h.CreateEvent(ctx, &rpc.CreateEventRequest{
		Title:          "Board games",
		Description:    "bring snacks",
		DateOptions:    []time.Time{start, start.Add(24 * time.Hour)},
		ParticipantIds: participants,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return cr.Event
}

func wantCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", code)
	}
	if s, _ := status.FromError(err); s.Code() != code {
		t.Fatalf("expected %v, got %v (%s)", code, s.Code(), s.Message())
	}
}

// ----- auth tests -----

func TestRegisterValidation(t *testing.T) {
	h := setup(t)

	tests := []struct {
		name string
		req  *rpc.RegisterRequest
	}{
		{"empty email", &rpc.RegisterRequest{Email: "", Password: "testpass123", Name: "X"}},
		{"empty password", &rpc.RegisterRequest{Email: "a@b.com", Password: "", Name: "X"}},
		{"short password", &rpc.RegisterRequest{Email: "a@b.com", Password: "short", Name: "X"}},
		{"empty name", &rpc.RegisterRequest{Email: "a@b.com", Password: "testpass123", Name: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Register(context.Background(), tt.req)
			wantCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := setup(t)

	req := &rpc.RegisterRequest{Email: "dup@test.com", Password: "testpass123", Name: "First"}
	if _, err := h.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	req.Email = "DUP@test.com"
	_, err := h.Register(context.Background(), req)
	wantCode(t, err, codes.AlreadyExists)
}

func TestLogin(t *testing.T) {
	h := setup(t)
	if _, err := h.Register(context.Background(), &rpc.RegisterRequest{
		Email: "login@test.com", Password: "testpass123", Name: "Login User",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	lr, err := h.Login(context.Background(), &rpc.LoginRequest{Email: "login@test.com", Password: "testpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if lr.AccessToken == "" || lr.RefreshToken == "" {
		t.Fatal("empty token")
	}
	if lr.Name != "Login User" {
		t.Errorf("expected name 'Login User', got '%s'", lr.Name)
	}

	_, err = h.Login(context.Background(), &rpc.LoginRequest{Email: "login@test.com", Password: "wrongpassword"})
	wantCode(t, err, codes.Unauthenticated)

	_, err = h.Login(context.Background(), &rpc.LoginRequest{Email: "nobody@nowhere.com", Password: "testpass123"})
	wantCode(t, err, codes.Unauthenticated)
}

func TestRefreshRotation(t *testing.T) {
	h := setup(t)
	rr, err := h.Register(context.Background(), &rpc.RegisterRequest{
		Email: "rot@test.com", Password: "testpass123", Name: "Rot",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	next, err := h.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: rr.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == rr.RefreshToken || next.AccessToken == "" {
		t.Fatalf("expected a new token pair, got %+v", next)
	}

	// replaying the rotated token revokes the whole family
	_, err = h.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: rr.RefreshToken})
	wantCode(t, err, codes.Unauthenticated)
	_, err = h.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: next.RefreshToken})
	wantCode(t, err, codes.Unauthenticated)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	h := setup(t)
	rr, err := h.Register(context.Background(), &rpc.RegisterRequest{
		Email: "out@test.com", Password: "testpass123", Name: "Out",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := h.Logout(authedCtx(rr.UserId), &rpc.Empty{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = h.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: rr.RefreshToken})
	wantCode(t, err, codes.Unauthenticated)
}

func TestMeAndSearch(t *testing.T) {
	h := setup(t)
	uid := registerUser(t, h, "Grace Hopper")
	registerUser(t, h, "Ada Lovelace")
	ctx := authedCtx(uid)

	me, err := h.Me(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Id != uid || me.Name != "Grace Hopper" {
		t.Fatalf("unexpected profile: %+v", me)
	}

	sr, err := h.SearchUsers(ctx, &rpc.SearchUsersRequest{Query: "lovelace"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(sr.Users) != 1 || sr.Users[0].Name != "Ada Lovelace" {
		t.Fatalf("unexpected search result: %+v", sr.Users)
	}

	_, err = h.Me(context.Background(), &rpc.Empty{})
	wantCode(t, err, codes.Unauthenticated)
}

// ----- events -----

func TestEventLifecycle(t *testing.T) {
	h := setup(t)
	owner := registerUser(t, h, "Owner")
	guest := registerUser(t, h, "Guest")
	stranger := registerUser(t, h, "Stranger")
	ctx := authedCtx(owner)

	e := createEvent(t, h, ctx, guest)
	if e.Id == "" || e.CreatorId != owner || len(e.DateOptions) != 2 {
		t.Fatalf("unexpected event: %+v", e)
	}

	gr, err := h.GetEvent(authedCtx(guest), &rpc.IDRequest{Id: e.Id})
	if err != nil {
		t.Fatalf("get as guest: %v", err)
	}
	if gr.Creator.Name != "Owner" || len(gr.Participants) != 1 || gr.Participants[0].Name != "Guest" {
		t.Fatalf("unexpected detail: %+v", gr)
	}

	_, err = h.GetEvent(authedCtx(stranger), &rpc.IDRequest{Id: e.Id})
	wantCode(t, err, codes.PermissionDenied)

	_, err = h.UpdateEvent(authedCtx(guest), &rpc.UpdateEventRequest{Id: e.Id, Title: "Mine now"})
	wantCode(t, err, codes.PermissionDenied)

	ur, err := h.UpdateEvent(ctx, &rpc.UpdateEventRequest{
		Id:          e.Id,
		Description: "",
		UpdateMask:  &fieldmaskpb.FieldMask{Paths: []string{"description"}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ur.Event.Description != "" || ur.Event.Title != "Board games" {
		t.Fatalf("mask not honoured: %+v", ur.Event)
	}

	_, err = h.UpdateEvent(ctx, &rpc.UpdateEventRequest{
		Id:         e.Id,
		UpdateMask: &fieldmaskpb.FieldMask{Paths: []string{"creator_id"}},
	})
	wantCode(t, err, codes.InvalidArgument)

	mine, err := h.ListMyEvents(ctx, &rpc.Empty{})
	if err != nil || len(mine.Events) != 1 {
		t.Fatalf("list mine: %v %+v", err, mine)
	}
	invited, err := h.ListInvitedEvents(authedCtx(guest), &rpc.Empty{})
	if err != nil || len(invited.Events) != 1 {
		t.Fatalf("list invited: %v %+v", err, invited)
	}

	_, err = h.DeleteEvent(authedCtx(guest), &rpc.IDRequest{Id: e.Id})
	wantCode(t, err, codes.PermissionDenied)
	if _, err := h.DeleteEvent(ctx, &rpc.IDRequest{Id: e.Id}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = h.GetEvent(ctx, &rpc.IDRequest{Id: e.Id})
	wantCode(t, err, codes.NotFound)
}

func TestCreateEventValidation(t *testing.T) {
	h := setup(t)
	ctx := authedCtx(registerUser(t, h, "Owner"))

	tests := []struct {
		name string
		req  *rpc.CreateEventRequest
	}{
		{"empty title", &rpc.CreateEventRequest{DateOptions: []time.Time{time.Now()}}},
		{"no dates", &rpc.CreateEventRequest{Title: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.CreateEvent(ctx, tt.req)
			wantCode(t, err, codes.InvalidArgument)
		})
	}
}

// ----- invitations and polls -----

func TestInviteRespondAndVote(t *testing.T) {
	h := setup(t)
	owner := registerUser(t, h, "Owner")
	guest := registerUser(t, h, "Guest")
	ctx := authedCtx(owner)
	e := createEvent(t, h, ctx)

	ir, err := h.InviteUsers(ctx, &rpc.InviteUsersRequest{
		EventId: e.Id, UserIds: []string{guest, "nobody"}, Message: "join us",
	})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if len(ir.Results) != 2 || ir.Results[0].Status != model.OutcomeInvited || ir.Results[1].Status != model.OutcomeUserNotFound {
		t.Fatalf("unexpected outcomes: %+v", ir.Results)
	}

	_, err = h.InviteUsers(authedCtx(guest), &rpc.InviteUsersRequest{EventId: e.Id, UserIds: []string{owner}})
	wantCode(t, err, codes.PermissionDenied)

	lr, err := h.ListInvitations(authedCtx(guest), &rpc.ListInvitationsRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("list invitations: %v", err)
	}
	if len(lr.Invitations) != 1 || lr.Invitations[0].Sender.Name != "Owner" || lr.Invitations[0].Event.Title != "Board games" {
		t.Fatalf("unexpected invitations: %+v", lr.Invitations)
	}

	inv := lr.Invitations[0].Invitation
	rr, err := h.RespondInvitation(authedCtx(guest), &rpc.RespondInvitationRequest{InvitationId: inv.Id, Response: "accepted"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if rr.Invitation.Status != "accepted" || !rr.Invitation.Read {
		t.Fatalf("unexpected invitation: %+v", rr.Invitation)
	}
	_, err = h.RespondInvitation(authedCtx(guest), &rpc.RespondInvitationRequest{InvitationId: inv.Id, Response: "declined"})
	wantCode(t, err, codes.FailedPrecondition)

	pr, err := h.CreatePoll(ctx, &rpc.CreatePollRequest{EventId: e.Id, Question: "Which day?", Options: []string{"Sat", "Sun"}})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if _, err := h.Vote(authedCtx(guest), &rpc.VoteRequest{PollId: pr.Poll.Id, OptionIndex: 0}); err != nil {
		t.Fatalf("vote: %v", err)
	}
	vr, err := h.Vote(authedCtx(guest), &rpc.VoteRequest{PollId: pr.Poll.Id, OptionIndex: 1})
	if err != nil {
		t.Fatalf("vote again: %v", err)
	}
	if vr.Poll.Options[0].VoteCount != 0 || vr.Poll.Options[1].VoteCount != 1 {
		t.Fatalf("vote did not move: %+v", vr.Poll.Options)
	}
	_, err = h.Vote(authedCtx(guest), &rpc.VoteRequest{PollId: pr.Poll.Id, OptionIndex: 5})
	wantCode(t, err, codes.InvalidArgument)

	compact, err := h.GetPollResults(ctx, &rpc.GetPollResultsRequest{PollId: pr.Poll.Id, Compact: true})
	if err != nil {
		t.Fatalf("compact results: %v", err)
	}
	full, err := h.GetPollResults(ctx, &rpc.GetPollResultsRequest{PollId: pr.Poll.Id})
	if err != nil {
		t.Fatalf("full results: %v", err)
	}
	for i, o := range compact.Poll.Options {
		if len(o.Voters) != 0 || len(o.VoterIds) != 0 {
			t.Fatalf("compact option %d leaks voters", i)
		}
		if o.VoteCount != int32(len(full.Poll.Options[i].Voters)) {
			t.Fatalf("option %d: compact count %d, full voters %d", i, o.VoteCount, len(full.Poll.Options[i].Voters))
		}
	}
	if full.Poll.Options[1].Voters[0].Name != "Guest" || full.Creator.Name != "Owner" {
		t.Fatalf("unexpected full results: %+v", full)
	}

	polls, err := h.ListEventPolls(ctx, &rpc.IDRequest{Id: e.Id})
	if err != nil || len(polls.Polls) != 1 {
		t.Fatalf("list polls: %v %+v", err, polls)
	}
}
