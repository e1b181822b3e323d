package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dealdesk/internal/models"
)

const participantColumns = `id, deal_id, user_id, role, is_active, joined_at, left_at`

func scanParticipant(row rowScanner) (*models.Participant, error) {
	p := &models.Participant{}
	if err := row.Scan(&p.ID, &p.DealID, &p.UserID, &p.Role, &p.IsActive, &p.JoinedAt, &p.LeftAt); err != nil {
		return nil, err
	}
	return p, nil
}

func insertParticipant(ctx context.Context, q queryer, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const stmt = `
        INSERT INTO deal_participants (id, deal_id, user_id, role, is_active, joined_at, left_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := q.ExecContext(ctx, stmt,
		p.ID, p.DealID, p.UserID, p.Role, p.IsActive, p.JoinedAt, nullTime(p.LeftAt),
	); err != nil {
		return fmt.Errorf("insert participant: %w", classify(err))
	}
	return nil
}

func (s *PostgresStore) queryParticipants(ctx context.Context, query string, args ...any) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", classify(err))
	}
	defer rows.Close()

	var out []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", classify(err))
		}
		out = append(out, *p)
	}
	return out, classify(rows.Err())
}

func (s *PostgresStore) ActiveParticipants(ctx context.Context, dealID, userID string) ([]models.Participant, error) {
	if uuid.Validate(dealID) != nil {
		return nil, nil
	}
	return s.queryParticipants(ctx,
		`SELECT `+participantColumns+` FROM deal_participants
         WHERE deal_id = $1 AND user_id = $2 AND is_active
         ORDER BY joined_at, id`, dealID, userID)
}

func (s *PostgresStore) ListParticipants(ctx context.Context, dealID string) ([]models.Participant, error) {
	return s.queryParticipants(ctx,
		`SELECT `+participantColumns+` FROM deal_participants
         WHERE deal_id = $1
         ORDER BY joined_at, id`, dealID)
}

func (s *PostgresStore) AddParticipant(ctx context.Context, p *models.Participant, act *models.Activity) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertParticipant(ctx, tx, p); err != nil {
			return err
		}
		return insertActivity(ctx, tx, p.DealID, act)
	})
}

func (s *PostgresStore) DeactivateParticipant(ctx context.Context, dealID, participantID string, at time.Time, act *models.Activity) (*models.Participant, error) {
	var result *models.Participant
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+participantColumns+` FROM deal_participants WHERE id = $1 AND deal_id = $2`,
			participantID, dealID)
		target, err := scanParticipant(row)
		if err != nil {
			return fmt.Errorf("get participant %s: %w", participantID, classify(err))
		}
		if !target.IsActive {
			result = target
			return nil
		}

		if target.Role == models.RoleBuyer || target.Role == models.RoleSeller {
			// Row locks on the remaining holders of the role serialize
			// concurrent removals.
			rows, err := tx.QueryContext(ctx,
				`SELECT id FROM deal_participants
                 WHERE deal_id = $1 AND role = $2 AND is_active AND id <> $3
                 FOR UPDATE`, dealID, target.Role, participantID)
			if err != nil {
				return fmt.Errorf("lock participants: %w", classify(err))
			}
			others := 0
			for rows.Next() {
				others++
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return classify(err)
			}
			if others == 0 {
				return ErrLastRequiredRole
			}
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE deal_participants SET is_active = FALSE, left_at = $1 WHERE id = $2 AND is_active`,
			at, participantID)
		if err != nil {
			return fmt.Errorf("deactivate participant %s: %w", participantID, classify(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrVersionConflict
		}
		target.IsActive = false
		target.LeftAt = &at
		result = target
		return insertActivity(ctx, tx, dealID, act)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
