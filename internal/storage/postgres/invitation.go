package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"event-polling-api/internal/model"
)

const invitationColumns = `id, event_id, from_id, to_id, message, status, is_read, version, created_at, updated_at`

func scanInvitation(row pgx.Row, inv *model.Invitation) error {
	return row.Scan(&inv.ID, &inv.EventID, &inv.FromID, &inv.ToID, &inv.Message,
		&inv.Status, &inv.Read, &inv.Version, &inv.CreatedAt, &inv.UpdatedAt)
}

// CreateInvitation relies on invitations_one_pending_idx: a second pending row
// for the same (event, invitee) fails with a unique violation.
func (s *Store) CreateInvitation(ctx context.Context, inv *model.Invitation) error {
	if inv.Version == 0 {
		inv.Version = 1
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO invitations (`+invitationColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		inv.ID, inv.EventID, inv.FromID, inv.ToID, inv.Message,
		string(inv.Status), inv.Read, inv.Version, inv.CreatedAt, inv.UpdatedAt,
	)
	return translate(err)
}

func (s *Store) GetInvitation(ctx context.Context, id string) (*model.Invitation, error) {
	inv := &model.Invitation{}
	err := scanInvitation(s.pool.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, id), inv)
	if err != nil {
		return nil, translate(err)
	}
	return inv, nil
}

func (s *Store) PendingInvitation(ctx context.Context, eventID, toID string) (*model.Invitation, error) {
	inv := &model.Invitation{}
	err := scanInvitation(s.pool.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE event_id = $1 AND to_id = $2 AND status = 'pending'`, eventID, toID), inv)
	if err != nil {
		return nil, translate(err)
	}
	return inv, nil
}

func (s *Store) UpdateInvitation(ctx context.Context, inv *model.Invitation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE invitations
		 SET message=$1, status=$2, is_read=$3, updated_at=$4, version=version+1
		 WHERE id=$5 AND version=$6`,
		inv.Message, string(inv.Status), inv.Read, inv.UpdatedAt, inv.ID, inv.Version,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return s.missingOrStale(ctx, tx, `SELECT EXISTS(SELECT 1 FROM invitations WHERE id = $1)`, inv.ID)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	inv.Version++
	return nil
}

func (s *Store) ListInvitations(ctx context.Context, toID string, status model.InvitationStatus) ([]model.Invitation, error) {
	q := `SELECT ` + invitationColumns + ` FROM invitations WHERE to_id = $1`
	args := []any{toID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Invitation
	for rows.Next() {
		var inv model.Invitation
		if err := scanInvitation(rows, &inv); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
