package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"dealdesk/internal/models"
)

func insertActivity(ctx context.Context, q queryer, dealID string, act *models.Activity) error {
	if act == nil {
		return nil
	}
	if act.ID == "" {
		act.ID = uuid.NewString()
	}
	act.DealID = dealID
	detail := act.Detail
	if detail == nil {
		detail = map[string]string{}
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode activity detail: %w", err)
	}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO deal_activities (id, deal_id, actor_id, kind, detail, created_at)
         VALUES ($1,$2,$3,$4,$5,$6)`,
		act.ID, act.DealID, act.ActorID, act.Kind, raw, act.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert activity: %w", classify(err))
	}
	return nil
}

func (s *PostgresStore) ListActivities(ctx context.Context, dealID string) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deal_id, actor_id, kind, detail, created_at
         FROM deal_activities WHERE deal_id = $1
         ORDER BY created_at, id`, dealID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", classify(err))
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		var raw []byte
		if err := rows.Scan(&a.ID, &a.DealID, &a.ActorID, &a.Kind, &raw, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", classify(err))
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &a.Detail); err != nil {
				return nil, fmt.Errorf("decode activity detail: %w", err)
			}
		}
		out = append(out, a)
	}
	return out, classify(rows.Err())
}
