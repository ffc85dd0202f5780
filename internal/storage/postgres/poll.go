package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"event-polling-api/internal/model"
	"event-polling-api/internal/storage"
)

func (s *Store) CreatePoll(ctx context.Context, p *model.Poll) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if p.Version == 0 {
		p.Version = 1
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO polls (id, event_id, question, created_by, version, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.EventID, p.Question, p.CreatedBy, p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"poll_options"},
		[]string{"poll_id", "position", "text"},
		pgx.CopyFromSlice(len(p.Options), func(i int) ([]any, error) {
			return []any{p.ID, i, p.Options[i].Text}, nil
		}),
	)
	if err != nil {
		return translate(err)
	}
	if err := copyVotes(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) GetPoll(ctx context.Context, id string) (*model.Poll, error) {
	p := model.Poll{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, event_id, question, created_by, version, created_at, updated_at
		 FROM polls WHERE id = $1`, id,
	).Scan(&p.ID, &p.EventID, &p.Question, &p.CreatedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	polls := []model.Poll{p}
	if err := s.loadOptions(ctx, polls); err != nil {
		return nil, err
	}
	return &polls[0], nil
}

// UpdatePollVotes rewrites the poll's vote rows in one transaction guarded by
// the poll version.
func (s *Store) UpdatePollVotes(ctx context.Context, p *model.Poll) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE polls SET updated_at=$1, version=version+1 WHERE id=$2 AND version=$3`,
		p.UpdatedAt, p.ID, p.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.missingOrStale(ctx, tx, `SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)`, p.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM poll_votes WHERE poll_id=$1`, p.ID); err != nil {
		return err
	}
	if err := copyVotes(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	p.Version++
	return nil
}

func (s *Store) ListPollsByEvent(ctx context.Context, eventID string) ([]model.Poll, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, event_id, question, created_by, version, created_at, updated_at
		 FROM polls WHERE event_id = $1
		 ORDER BY created_at, id`, eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Poll
	for rows.Next() {
		var p model.Poll
		if err := rows.Scan(&p.ID, &p.EventID, &p.Question, &p.CreatedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, s.loadOptions(ctx, out)
}

// loadOptions fills options and votes for every poll in two queries.
func (s *Store) loadOptions(ctx context.Context, polls []model.Poll) error {
	ids := make([]string, len(polls))
	index := make(map[string]int, len(polls))
	for i := range polls {
		ids[i] = polls[i].ID
		index[polls[i].ID] = i
	}

	rows, err := s.pool.Query(ctx,
		`SELECT poll_id, text FROM poll_options
		 WHERE poll_id = ANY($1) ORDER BY poll_id, position`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pollID, text string
		if err := rows.Scan(&pollID, &text); err != nil {
			rows.Close()
			return err
		}
		p := &polls[index[pollID]]
		p.Options = append(p.Options, model.PollOption{Text: text})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT poll_id, user_id, position FROM poll_votes
		 WHERE poll_id = ANY($1) ORDER BY poll_id, position, seq`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var pollID, userID string
		var pos int
		if err := rows.Scan(&pollID, &userID, &pos); err != nil {
			return err
		}
		p := &polls[index[pollID]]
		if pos < 0 || pos >= len(p.Options) {
			continue
		}
		p.Options[pos].Votes = append(p.Options[pos].Votes, userID)
	}
	return rows.Err()
}

func copyVotes(ctx context.Context, tx pgx.Tx, p *model.Poll) error {
	var rows [][]any
	for pos, o := range p.Options {
		for seq, userID := range o.Votes {
			rows = append(rows, []any{p.ID, userID, pos, seq})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"poll_votes"},
		[]string{"poll_id", "user_id", "position", "seq"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return translate(err)
	}
	return nil
}

var _ storage.PollStore = (*Store)(nil)
