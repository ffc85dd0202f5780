package service

import (
	"context"
	"strings"
	"time"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

type CreateEventInput struct {
	Title        string
	Description  string
	DateOptions  []time.Time
	Participants []string
}

// EventPatch is a shallow merge: nil fields are left as they are.
type EventPatch struct {
	Title        *string
	Description  *string
	DateOptions  *[]time.Time
	Participants *[]string
}

func (p EventPatch) apply(e *model.Event) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.DateOptions != nil {
		e.DateOptions = append([]time.Time(nil), (*p.DateOptions)...)
	}
	if p.Participants != nil {
		e.Participants = model.UniqueIDs(*p.Participants)
	}
}

// EventDetail is an event with its creator and participants resolved.
type EventDetail struct {
	Event        model.Event
	Creator      model.Profile
	Participants []model.Profile
}

// Registry owns events: creator-only mutation, creator-or-participant reads.
type Registry struct {
	base
	events storage.EventStore
	users  storage.Directory
}

func NewRegistry(events storage.EventStore, users storage.Directory, opts Options) *Registry {
	return &Registry{base: newBase(opts), events: events, users: users}
}

func validateEvent(e *model.Event) error {
	if e.Title == "" {
		return apperr.InvalidInput("title is required")
	}
	if len(e.DateOptions) == 0 {
		return apperr.InvalidInput("at least one date option is required")
	}
	return nil
}

func (r *Registry) Create(ctx context.Context, who model.Identity, in CreateEventInput) (model.Event, error) {
	if err := requireIdentity(who); err != nil {
		return model.Event{}, err
	}
	now := r.now()
	e := &model.Event{
		ID:           r.newID(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		DateOptions:  append([]time.Time(nil), in.DateOptions...),
		Participants: model.UniqueIDs(in.Participants),
		CreatorID:    who.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateEvent(e); err != nil {
		return model.Event{}, err
	}
	if err := r.events.CreateEvent(ctx, e); err != nil {
		return model.Event{}, r.storeErr(ctx, "create event", err, "event not found")
	}
	r.log.InfoContext(ctx, "event created", "event_id", e.ID, "creator_id", e.CreatorID)
	return *e, nil
}

func (r *Registry) Update(ctx context.Context, who model.Identity, eventID string, patch EventPatch) (model.Event, error) {
	if err := requireIdentity(who); err != nil {
		return model.Event{}, err
	}
	return r.mutateEvent(ctx, r.events, eventID, func(e *model.Event) (bool, error) {
		if !e.IsCreator(who.UserID) {
			return false, apperr.Forbidden("only the event creator can update it")
		}
		patch.apply(e)
		if err := validateEvent(e); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Delete removes the event only. Polls and invitations that reference it are
// kept and degrade to id-only references.
func (r *Registry) Delete(ctx context.Context, who model.Identity, eventID string) error {
	if err := requireIdentity(who); err != nil {
		return err
	}
	e, err := r.events.GetEvent(ctx, eventID)
	if err != nil {
		return r.storeErr(ctx, "load event", err, "event not found")
	}
	if !e.IsCreator(who.UserID) {
		return apperr.Forbidden("only the event creator can delete it")
	}
	if err := r.events.DeleteEvent(ctx, eventID); err != nil {
		return r.storeErr(ctx, "delete event", err, "event not found")
	}
	r.log.InfoContext(ctx, "event deleted", "event_id", eventID)
	return nil
}

func (r *Registry) ListByCreator(ctx context.Context, who model.Identity) ([]model.Event, error) {
	if err := requireIdentity(who); err != nil {
		return nil, err
	}
	events, err := r.events.ListEventsByCreator(ctx, who.UserID)
	if err != nil {
		return nil, r.storeErr(ctx, "list events by creator", err, "event not found")
	}
	return events, nil
}

func (r *Registry) ListByParticipant(ctx context.Context, who model.Identity) ([]model.Event, error) {
	if err := requireIdentity(who); err != nil {
		return nil, err
	}
	events, err := r.events.ListEventsByParticipant(ctx, who.UserID)
	if err != nil {
		return nil, r.storeErr(ctx, "list events by participant", err, "event not found")
	}
	return events, nil
}

func (r *Registry) Get(ctx context.Context, who model.Identity, eventID string) (EventDetail, error) {
	if err := requireIdentity(who); err != nil {
		return EventDetail{}, err
	}
	e, err := r.events.GetEvent(ctx, eventID)
	if err != nil {
		return EventDetail{}, r.storeErr(ctx, "load event", err, "event not found")
	}
	if !e.CanView(who.UserID) {
		return EventDetail{}, apperr.Forbidden("not a participant of this event")
	}

	detail := EventDetail{Event: *e}
	if detail.Creator, err = r.profileOf(ctx, r.users, e.CreatorID); err != nil {
		return EventDetail{}, err
	}
	detail.Participants = make([]model.Profile, 0, len(e.Participants))
	for _, id := range e.Participants {
		p, err := r.profileOf(ctx, r.users, id)
		if err != nil {
			return EventDetail{}, err
		}
		detail.Participants = append(detail.Participants, p)
	}
	return detail, nil
}
