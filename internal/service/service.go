// Package service holds the consistency and authorization rules for events,
// invitations and polls. Every mutation runs as load, mutate, versioned write,
// retried while the store reports a stale version.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

// Options carries the ambient dependencies shared by the three services.
// Zero values fall back to defaults.
type Options struct {
	Logger *slog.Logger
	Retry  RetryPolicy
	Now    func() time.Time
	NewID  func() string
}

// RetryPolicy bounds how often a versioned write is retried after losing a race.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxTries:        8,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
	}
}

// run calls op until it returns something other than storage.ErrStale or the
// tries are spent. Any other error stops the loop immediately.
func (p RetryPolicy) run(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err != nil && !errors.Is(err, storage.ErrStale) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(p.MaxTries))

	switch {
	case apperr.IsContext(err):
		return err
	case errors.Is(err, storage.ErrStale):
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return apperr.Wrap(apperr.CodeContention, "too many concurrent updates, try again", err)
	}
	return err
}

type base struct {
	log   *slog.Logger
	retry RetryPolicy
	now   func() time.Time
	newID func() string
}

func newBase(opts Options) base {
	b := base{
		log:   resolveLogger(opts.Logger),
		retry: opts.Retry,
		now:   opts.Now,
		newID: opts.NewID,
	}
	def := DefaultRetryPolicy()
	if b.retry.MaxTries == 0 {
		b.retry.MaxTries = def.MaxTries
	}
	if b.retry.InitialInterval <= 0 {
		b.retry.InitialInterval = def.InitialInterval
	}
	if b.retry.MaxInterval <= 0 {
		b.retry.MaxInterval = def.MaxInterval
	}
	if b.now == nil {
		b.now = func() time.Time { return time.Now().UTC() }
	}
	if b.newID == nil {
		b.newID = func() string { return uuid.New().String() }
	}
	return b
}

// resolveLogger guarantees a non-nil logger.
func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// storeErr maps a storage error onto the taxonomy. ErrStale and context
// errors pass through untouched, the former so the retry loop can see it.
func (b base) storeErr(ctx context.Context, op string, err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrStale):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return apperr.NotFound(notFound)
	case apperr.IsContext(err):
		// the caller gave up; not a storage fault
		return err
	default:
		b.log.ErrorContext(ctx, "storage failure", "op", op, "error", err)
		return apperr.Wrap(apperr.CodeInternal, op, err)
	}
}

func requireIdentity(who model.Identity) error {
	if strings.TrimSpace(who.UserID) == "" {
		return apperr.New(apperr.CodeUnauthenticated, "authentication required")
	}
	return nil
}

// mutateEvent reloads the event, applies fn and writes the result back under
// the version guard, retrying lost races. fn reports whether it changed
// anything; unchanged events are not written.
func (b base) mutateEvent(ctx context.Context, events storage.EventStore, id string, fn func(*model.Event) (bool, error)) (model.Event, error) {
	var out model.Event
	err := b.retry.run(ctx, func() error {
		e, err := events.GetEvent(ctx, id)
		if err != nil {
			return b.storeErr(ctx, "load event", err, "event not found")
		}
		changed, err := fn(e)
		if err != nil {
			return err
		}
		if changed {
			e.UpdatedAt = b.now()
			if err := events.UpdateEvent(ctx, e); err != nil {
				return b.storeErr(ctx, "update event", err, "event not found")
			}
		}
		out = *e
		return nil
	})
	return out, err
}

// EventSummary is the slice of an event shown next to invitations and polls.
type EventSummary struct {
	ID          string
	Title       string
	Description string
	CreatorID   string
}

func summarize(e *model.Event) *EventSummary {
	return &EventSummary{ID: e.ID, Title: e.Title, Description: e.Description, CreatorID: e.CreatorID}
}

// profileOf resolves id, degrading to an id-only profile when the user is gone.
func (b base) profileOf(ctx context.Context, users storage.Directory, id string) (model.Profile, error) {
	p, err := users.ResolveUser(ctx, id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return model.Profile{ID: id}, nil
	}
	return model.Profile{}, b.storeErr(ctx, "resolve user", err, "user not found")
}
