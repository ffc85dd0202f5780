package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

const eventColumns = `e.id, e.title, e.description, e.date_options, e.creator_id,
	e.version, e.created_at, e.updated_at,
	COALESCE((SELECT array_agg(p.user_id ORDER BY p.position)
	          FROM event_participants p WHERE p.event_id = e.id), '{}'::text[])`

func scanEvent(row pgx.Row, e *model.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.DateOptions, &e.CreatorID,
		&e.Version, &e.CreatedAt, &e.UpdatedAt, &e.Participants)
}

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if e.Version == 0 {
		e.Version = 1
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO events (id, title, description, date_options, creator_id, version, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Title, e.Description, e.DateOptions, e.CreatorID, e.Version, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}

	if err := copyParticipants(ctx, tx, e); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e := &model.Event{}
	err := scanEvent(s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id), e)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// version guard: a concurrent writer bumps the version and this matches no row
	tag, err := tx.Exec(ctx,
		`UPDATE events
		 SET title=$1, description=$2, date_options=$3, updated_at=$4, version=version+1
		 WHERE id=$5 AND version=$6`,
		e.Title, e.Description, e.DateOptions, e.UpdatedAt, e.ID, e.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.missingOrStale(ctx, tx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, e.ID)
	}

	// replace participants
	if _, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE event_id=$1`, e.ID); err != nil {
		return err
	}
	if err := copyParticipants(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	e.Version++
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	return s.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events e
		 WHERE e.creator_id = $1
		 ORDER BY e.created_at, e.id`, userID)
}

func (s *Store) ListEventsByParticipant(ctx context.Context, userID string) ([]model.Event, error) {
	return s.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events e
		 WHERE EXISTS (SELECT 1 FROM event_participants p WHERE p.event_id = e.id AND p.user_id = $1)
		 ORDER BY e.created_at, e.id`, userID)
}

func (s *Store) listEvents(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func copyParticipants(ctx context.Context, tx pgx.Tx, e *model.Event) error {
	if len(e.Participants) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"event_participants"},
		[]string{"event_id", "user_id", "position"},
		pgx.CopyFromSlice(len(e.Participants), func(i int) ([]any, error) {
			return []any{e.ID, e.Participants[i], i}, nil
		}),
	)
	return translate(err)
}

// missingOrStale tells a vanished row apart from a lost version race.
func (s *Store) missingOrStale(ctx context.Context, tx pgx.Tx, existsQuery, id string) error {
	var exists bool
	if err := tx.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return storage.ErrNotFound
	}
	return storage.ErrStale
}
