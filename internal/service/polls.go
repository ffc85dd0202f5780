package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

const minPollOptions = 2

type OptionResult struct {
	Text   string
	Count  int
	Voters []model.Profile // empty in compact results
}

type PollResults struct {
	PollID    string
	EventID   string
	Question  string
	CreatedAt time.Time
	Compact   bool
	Options   []OptionResult
	Event     *EventSummary // nil once the event is gone
	Creator   model.Profile
}

// Engine runs date and question polls attached to events.
type Engine struct {
	base
	events storage.EventStore
	polls  storage.PollStore
	users  storage.Directory
}

func NewEngine(events storage.EventStore, polls storage.PollStore, users storage.Directory, opts Options) *Engine {
	return &Engine{base: newBase(opts), events: events, polls: polls, users: users}
}

// CreatePoll is open to any authenticated user, participant or not.
func (e *Engine) CreatePoll(ctx context.Context, who model.Identity, eventID, question string, options []string) (model.Poll, error) {
	if err := requireIdentity(who); err != nil {
		return model.Poll{}, err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return model.Poll{}, apperr.InvalidInput("question is required")
	}
	if len(options) < minPollOptions {
		return model.Poll{}, apperr.InvalidInput("a poll needs at least two options")
	}
	opts := make([]model.PollOption, len(options))
	for i, text := range options {
		text = strings.TrimSpace(text)
		if text == "" {
			return model.Poll{}, apperr.InvalidInput("option text is required")
		}
		opts[i] = model.PollOption{Text: text}
	}

	if _, err := e.events.GetEvent(ctx, eventID); err != nil {
		return model.Poll{}, e.storeErr(ctx, "load event", err, "event not found")
	}

	now := e.now()
	p := &model.Poll{
		ID:        e.newID(),
		EventID:   eventID,
		Question:  question,
		Options:   opts,
		CreatedBy: who.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.polls.CreatePoll(ctx, p); err != nil {
		return model.Poll{}, e.storeErr(ctx, "create poll", err, "poll not found")
	}
	e.log.InfoContext(ctx, "poll created", "poll_id", p.ID, "event_id", eventID)
	return *p, nil
}

// Vote moves who's single vote to optionIndex.
func (e *Engine) Vote(ctx context.Context, who model.Identity, pollID string, optionIndex int) (model.Poll, error) {
	if err := requireIdentity(who); err != nil {
		return model.Poll{}, err
	}
	var out model.Poll
	err := e.retry.run(ctx, func() error {
		p, err := e.polls.GetPoll(ctx, pollID)
		if err != nil {
			return e.storeErr(ctx, "load poll", err, "poll not found")
		}
		if err := p.CastVote(optionIndex, who.UserID); err != nil {
			if errors.Is(err, model.ErrOptionOutOfRange) {
				return apperr.InvalidInput("option index out of range")
			}
			return err
		}
		p.UpdatedAt = e.now()
		if err := e.polls.UpdatePollVotes(ctx, p); err != nil {
			return e.storeErr(ctx, "update poll votes", err, "poll not found")
		}
		out = *p
		return nil
	})
	if err != nil {
		return model.Poll{}, err
	}
	return out, nil
}

// Results tallies a poll. Full results resolve every voter; voters the
// directory no longer knows keep their id so counts still match.
func (e *Engine) Results(ctx context.Context, pollID string, compact bool) (PollResults, error) {
	p, err := e.polls.GetPoll(ctx, pollID)
	if err != nil {
		return PollResults{}, e.storeErr(ctx, "load poll", err, "poll not found")
	}

	res := PollResults{
		PollID:    p.ID,
		EventID:   p.EventID,
		Question:  p.Question,
		CreatedAt: p.CreatedAt,
		Compact:   compact,
		Options:   make([]OptionResult, len(p.Options)),
	}
	if res.Creator, err = e.profileOf(ctx, e.users, p.CreatedBy); err != nil {
		return PollResults{}, err
	}
	ev, err := e.events.GetEvent(ctx, p.EventID)
	switch {
	case err == nil:
		res.Event = summarize(ev)
	case errors.Is(err, storage.ErrNotFound):
	default:
		return PollResults{}, e.storeErr(ctx, "load event", err, "event not found")
	}

	cache := make(map[string]model.Profile)
	for i, o := range p.Options {
		res.Options[i] = OptionResult{Text: o.Text, Count: len(o.Votes)}
		if compact {
			continue
		}
		voters := make([]model.Profile, 0, len(o.Votes))
		for _, id := range o.Votes {
			prof, ok := cache[id]
			if !ok {
				if prof, err = e.profileOf(ctx, e.users, id); err != nil {
					return PollResults{}, err
				}
				cache[id] = prof
			}
			voters = append(voters, prof)
		}
		res.Options[i].Voters = voters
	}
	return res, nil
}

func (e *Engine) ListByEvent(ctx context.Context, eventID string) ([]model.Poll, error) {
	if _, err := e.events.GetEvent(ctx, eventID); err != nil {
		return nil, e.storeErr(ctx, "load event", err, "event not found")
	}
	polls, err := e.polls.ListPollsByEvent(ctx, eventID)
	if err != nil {
		return nil, e.storeErr(ctx, "list polls", err, "poll not found")
	}
	return polls, nil
}
