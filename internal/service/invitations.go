package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

// inviteFanout caps concurrent per-target lookups within one batch.
const inviteFanout = 8

type InviteResult struct {
	EventID  string
	Outcomes []model.InviteOutcome
}

// InvitationView is an invitation as shown to its invitee.
type InvitationView struct {
	Invitation model.Invitation
	Event      *EventSummary // nil once the event is gone
	Sender     model.Profile
}

// Coordinator drives invitations and keeps the event's participant set in
// step with them.
type Coordinator struct {
	base
	events      storage.EventStore
	invitations storage.InvitationStore
	users       storage.Directory
}

func NewCoordinator(events storage.EventStore, invitations storage.InvitationStore, users storage.Directory, opts Options) *Coordinator {
	return &Coordinator{base: newBase(opts), events: events, invitations: invitations, users: users}
}

// Invite creates pending invitations for every resolvable target. Newly
// invited targets are added to the participant set right away so they can
// see the event before answering.
func (c *Coordinator) Invite(ctx context.Context, who model.Identity, eventID string, targetIDs []string, message string) (InviteResult, error) {
	if err := requireIdentity(who); err != nil {
		return InviteResult{}, err
	}
	event, err := c.events.GetEvent(ctx, eventID)
	if err != nil {
		return InviteResult{}, c.storeErr(ctx, "load event", err, "event not found")
	}
	if !event.IsCreator(who.UserID) {
		return InviteResult{}, apperr.Forbidden("only the event creator can invite users")
	}

	targets := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		if id = strings.TrimSpace(id); id != "" {
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		return InviteResult{}, apperr.InvalidInput("at least one user id is required")
	}

	unique := model.UniqueIDs(targets)
	resolved := make([]model.InviteOutcome, len(unique))
	g := new(errgroup.Group)
	g.SetLimit(inviteFanout)
	for i, uid := range unique {
		g.Go(func() error {
			o, err := c.inviteOne(ctx, event.ID, who.UserID, uid, message)
			if err != nil {
				return err
			}
			resolved[i] = o
			return nil
		})
	}
	batchErr := g.Wait()

	// Only invitations created by this batch add participants. Each one is
	// re-read under the event's version guard, so an answer that landed in
	// between is never overwritten.
	var add []model.InviteOutcome
	byID := make(map[string]model.InviteOutcome, len(unique))
	for _, o := range resolved {
		if o.UserID == "" {
			continue
		}
		byID[o.UserID] = o
		if o.Status == model.OutcomeInvited {
			add = append(add, o)
		}
	}
	if len(add) > 0 {
		_, err := c.mutateEvent(ctx, c.events, event.ID, func(e *model.Event) (bool, error) {
			changed := false
			for _, o := range add {
				pending, err := c.stillPending(ctx, event.ID, o)
				if err != nil {
					return false, err
				}
				if pending && e.AddParticipant(o.UserID) {
					changed = true
				}
			}
			return changed, nil
		})
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.log.WarnContext(ctx, "event vanished before participants were written",
				"event_id", event.ID, "participants", len(add))
		case err != nil:
			return InviteResult{}, err
		}
	}
	if batchErr != nil {
		return InviteResult{}, batchErr
	}

	res := InviteResult{EventID: event.ID, Outcomes: make([]model.InviteOutcome, 0, len(targets))}
	seen := make(map[string]bool, len(unique))
	for _, uid := range targets {
		o := byID[uid]
		if seen[uid] && o.Status == model.OutcomeInvited {
			o.Status = model.OutcomeAlreadyInvited
		}
		seen[uid] = true
		res.Outcomes = append(res.Outcomes, o)
	}
	c.log.InfoContext(ctx, "invitations sent", "event_id", event.ID, "targets", len(targets))
	return res, nil
}

func (c *Coordinator) inviteOne(ctx context.Context, eventID, fromID, toID, message string) (model.InviteOutcome, error) {
	if _, err := c.users.ResolveUser(ctx, toID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.InviteOutcome{UserID: toID, Status: model.OutcomeUserNotFound}, nil
		}
		return model.InviteOutcome{}, c.storeErr(ctx, "resolve user", err, "user not found")
	}

	existing, err := c.invitations.PendingInvitation(ctx, eventID, toID)
	if err == nil {
		return alreadyInvited(existing), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return model.InviteOutcome{}, c.storeErr(ctx, "load pending invitation", err, "invitation not found")
	}

	now := c.now()
	inv := &model.Invitation{
		ID:        c.newID(),
		EventID:   eventID,
		FromID:    fromID,
		ToID:      toID,
		Message:   message,
		Status:    model.InvitationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = c.invitations.CreateInvitation(ctx, inv)
	if errors.Is(err, storage.ErrDuplicate) {
		// a concurrent batch won the race for this invitee
		existing, err := c.invitations.PendingInvitation(ctx, eventID, toID)
		if err != nil {
			return model.InviteOutcome{UserID: toID, Status: model.OutcomeAlreadyInvited}, nil
		}
		return alreadyInvited(existing), nil
	}
	if err != nil {
		return model.InviteOutcome{}, c.storeErr(ctx, "create invitation", err, "invitation not found")
	}
	return model.InviteOutcome{UserID: toID, Status: model.OutcomeInvited, InvitationID: inv.ID}, nil
}

// stillPending reports whether the invitation behind o is still awaiting an answer.
func (c *Coordinator) stillPending(ctx context.Context, eventID string, o model.InviteOutcome) (bool, error) {
	inv, err := c.invitations.PendingInvitation(ctx, eventID, o.UserID)
	switch {
	case err == nil:
		return inv.ID == o.InvitationID, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, c.storeErr(ctx, "load pending invitation", err, "invitation not found")
	}
}

func alreadyInvited(inv *model.Invitation) model.InviteOutcome {
	return model.InviteOutcome{UserID: inv.ToID, Status: model.OutcomeAlreadyInvited, InvitationID: inv.ID}
}

// Respond records the invitee's answer and syncs the participant set.
// Answering again with the same response only re-runs the sync.
func (c *Coordinator) Respond(ctx context.Context, who model.Identity, invitationID, response string) (model.Invitation, error) {
	if err := requireIdentity(who); err != nil {
		return model.Invitation{}, err
	}
	answer, ok := model.ParseInvitationStatus(response)

	var inv model.Invitation
	err := c.retry.run(ctx, func() error {
		cur, err := c.invitations.GetInvitation(ctx, invitationID)
		if err != nil {
			return c.storeErr(ctx, "load invitation", err, "invitation not found")
		}
		if cur.ToID != who.UserID {
			return apperr.Forbidden("invitation is addressed to another user")
		}
		if !ok || !answer.IsResponse() {
			return apperr.InvalidInput("response must be accepted or declined")
		}
		if cur.Status != model.InvitationPending && cur.Status != answer {
			return apperr.Conflict("invitation was already " + string(cur.Status))
		}
		if cur.Status == answer && cur.Read {
			inv = *cur
			return nil
		}
		cur.Status = answer
		cur.Read = true
		cur.UpdatedAt = c.now()
		if err := c.invitations.UpdateInvitation(ctx, cur); err != nil {
			return c.storeErr(ctx, "update invitation", err, "invitation not found")
		}
		inv = *cur
		return nil
	})
	if err != nil {
		return model.Invitation{}, err
	}

	// The event is always rewritten, even when the set is unchanged. The
	// version bump makes a concurrent invite write-back that read the
	// invitation as pending lose its race and re-check.
	_, err = c.mutateEvent(ctx, c.events, inv.EventID, func(e *model.Event) (bool, error) {
		if inv.Status == model.InvitationAccepted {
			e.AddParticipant(who.UserID)
		} else {
			e.RemoveParticipant(who.UserID)
		}
		return true, nil
	})
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.log.WarnContext(ctx, "invitation answered for a deleted event",
			"invitation_id", inv.ID, "event_id", inv.EventID)
	case err != nil:
		return model.Invitation{}, err
	}
	c.log.InfoContext(ctx, "invitation answered", "invitation_id", inv.ID, "status", string(inv.Status))
	return inv, nil
}

// List returns invitations addressed to who, newest first. An empty filter
// returns every status.
func (c *Coordinator) List(ctx context.Context, who model.Identity, statusFilter string) ([]InvitationView, error) {
	if err := requireIdentity(who); err != nil {
		return nil, err
	}
	var status model.InvitationStatus
	if strings.TrimSpace(statusFilter) != "" {
		st, ok := model.ParseInvitationStatus(statusFilter)
		if !ok {
			return nil, apperr.InvalidInput("unknown invitation status " + statusFilter)
		}
		status = st
	}

	invs, err := c.invitations.ListInvitations(ctx, who.UserID, status)
	if err != nil {
		return nil, c.storeErr(ctx, "list invitations", err, "invitation not found")
	}

	events := make(map[string]*EventSummary)
	senders := make(map[string]model.Profile)
	out := make([]InvitationView, 0, len(invs))
	for _, inv := range invs {
		summary, ok := events[inv.EventID]
		if !ok {
			e, err := c.events.GetEvent(ctx, inv.EventID)
			switch {
			case err == nil:
				summary = summarize(e)
			case errors.Is(err, storage.ErrNotFound):
			default:
				return nil, c.storeErr(ctx, "load event", err, "event not found")
			}
			events[inv.EventID] = summary
		}
		sender, ok := senders[inv.FromID]
		if !ok {
			if sender, err = c.profileOf(ctx, c.users, inv.FromID); err != nil {
				return nil, err
			}
			senders[inv.FromID] = sender
		}
		out = append(out, InvitationView{Invitation: inv, Event: summary, Sender: sender})
	}
	return out, nil
}
