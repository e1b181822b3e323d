package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"dealdesk/internal/models"
)

const milestoneColumns = `id, deal_id, key, milestone_name, description, sequence_index, due_date,
       is_completed, completed_at, is_critical, notes, created_at, updated_at, version`

func scanMilestone(row rowScanner) (*models.Milestone, error) {
	m := &models.Milestone{}
	err := row.Scan(
		&m.ID, &m.DealID, &m.Key, &m.MilestoneName, &m.Description, &m.SequenceIndex, &m.DueDate,
		&m.IsCompleted, &m.CompletedAt, &m.IsCritical, &m.Notes, &m.CreatedAt, &m.UpdatedAt, &m.Version,
	)
	if err != nil {
		return nil, err
	}
	m.DueDate = models.DateOnly(m.DueDate)
	return m, nil
}

func insertMilestones(ctx context.Context, q queryer, dealID string, milestones []models.Milestone) error {
	const stmt = `
        INSERT INTO deal_milestones (id, deal_id, key, milestone_name, description, sequence_index,
                                     due_date, is_completed, completed_at, is_critical, notes,
                                     created_at, updated_at, version)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	for i := range milestones {
		m := &milestones[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.DealID = dealID
		if m.Version == 0 {
			m.Version = 1
		}
		if _, err := q.ExecContext(ctx, stmt,
			m.ID, m.DealID, m.Key, m.MilestoneName, m.Description, m.SequenceIndex,
			m.DueDate, m.IsCompleted, nullTime(m.CompletedAt), m.IsCritical, m.Notes,
			m.CreatedAt, m.UpdatedAt, m.Version,
		); err != nil {
			return fmt.Errorf("insert milestone %s: %w", m.Key, classify(err))
		}
	}
	return nil
}

func (s *PostgresStore) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+milestoneColumns+` FROM deal_milestones WHERE id = $1`, id)
	m, err := scanMilestone(row)
	if err != nil {
		return nil, fmt.Errorf("get milestone %s: %w", id, classify(err))
	}
	return m, nil
}

func (s *PostgresStore) ListMilestones(ctx context.Context, dealID string) ([]models.Milestone, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+milestoneColumns+` FROM deal_milestones WHERE deal_id = $1 ORDER BY sequence_index`, dealID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", classify(err))
	}
	defer rows.Close()

	var out []models.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan milestone: %w", classify(err))
		}
		out = append(out, *m)
	}
	return out, classify(rows.Err())
}

func (s *PostgresStore) UpdateMilestone(ctx context.Context, m *models.Milestone, expectedVersion int64, act *models.Activity) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		const stmt = `
        UPDATE deal_milestones
        SET due_date=$1, is_completed=$2, completed_at=$3, notes=$4, updated_at=$5, version=$6
        WHERE id=$7 AND version=$8`
		res, err := tx.ExecContext(ctx, stmt,
			m.DueDate, m.IsCompleted, nullTime(m.CompletedAt), m.Notes, m.UpdatedAt, m.Version,
			m.ID, expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("update milestone %s: %w", m.ID, classify(err))
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update milestone %s: %w", m.ID, classify(err))
		}
		if affected == 0 {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM deal_milestones WHERE id = $1)`, m.ID).Scan(&exists); err != nil {
				return fmt.Errorf("check milestone %s: %w", m.ID, classify(err))
			}
			if !exists {
				return ErrNotFound
			}
			return ErrVersionConflict
		}
		return insertActivity(ctx, tx, m.DealID, act)
	})
}
