package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dealdesk/internal/models"
)

const dealColumns = `id, deal_number, buyer_id, seller_id, listing_id, status, priority,
       initial_offer, current_offer, offer_date, closing_date, assigned_to,
       created_at, updated_at, version`

func scanDeal(row rowScanner) (*models.Deal, error) {
	d := &models.Deal{}
	err := row.Scan(
		&d.ID, &d.DealNumber, &d.BuyerID, &d.SellerID, &d.ListingID, &d.Status, &d.Priority,
		&d.InitialOffer, &d.CurrentOffer, &d.OfferDate, &d.ClosingDate, &d.AssignedTo,
		&d.CreatedAt, &d.UpdatedAt, &d.Version,
	)
	if err != nil {
		return nil, err
	}
	d.OfferDate = models.DateOnly(d.OfferDate)
	d.ClosingDate = models.DateOnly(d.ClosingDate)
	return d, nil
}

func (s *PostgresStore) CreateDeal(ctx context.Context, deal *models.Deal, participants []models.Participant, milestones []models.Milestone, act *models.Activity) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRowContext(ctx, `SELECT nextval('deal_number_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("next deal number: %w", classify(err))
		}
		if deal.ID == "" {
			deal.ID = uuid.NewString()
		}
		deal.DealNumber = FormatDealNumber(deal.CreatedAt, seq)
		if deal.Version == 0 {
			deal.Version = 1
		}

		const q = `
        INSERT INTO deals (id, deal_number, buyer_id, seller_id, listing_id, status, priority,
                           initial_offer, current_offer, offer_date, closing_date, assigned_to,
                           created_at, updated_at, version)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
		if _, err := tx.ExecContext(ctx, q,
			deal.ID, deal.DealNumber, deal.BuyerID, deal.SellerID, deal.ListingID, deal.Status, deal.Priority,
			deal.InitialOffer, deal.CurrentOffer, deal.OfferDate, deal.ClosingDate, nullString(deal.AssignedTo),
			deal.CreatedAt, deal.UpdatedAt, deal.Version,
		); err != nil {
			return fmt.Errorf("insert deal: %w", classify(err))
		}

		for i := range participants {
			participants[i].DealID = deal.ID
			if err := insertParticipant(ctx, tx, &participants[i]); err != nil {
				return err
			}
		}
		if err := insertMilestones(ctx, tx, deal.ID, milestones); err != nil {
			return err
		}
		return insertActivity(ctx, tx, deal.ID, act)
	})
}

func (s *PostgresStore) GetDeal(ctx context.Context, id string) (*models.Deal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id)
	d, err := scanDeal(row)
	if err != nil {
		return nil, fmt.Errorf("get deal %s: %w", id, classify(err))
	}
	return d, nil
}

func (s *PostgresStore) ListDeals(ctx context.Context, filter models.DealFilter) ([]models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals`
	var conditions []string
	var args []any
	argID := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf(
			`(id IN (SELECT deal_id FROM deal_participants WHERE user_id = $%d AND is_active) OR assigned_to = $%d)`,
			argID, argID))
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, fmt.Sprintf(`NOT (status = ANY($%d))`, argID))
		args = append(args, pq.Array([]string{
			string(models.StatusCompleted), string(models.StatusCancelled), string(models.StatusExpired),
		}))
		argID++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, deal_number DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", classify(err))
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", classify(err))
		}
		deals = append(deals, *d)
	}
	return deals, classify(rows.Err())
}

func (s *PostgresStore) UpdateDeal(ctx context.Context, deal *models.Deal, expectedVersion int64, act *models.Activity) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := updateDealRow(ctx, tx, deal, expectedVersion); err != nil {
			return err
		}
		return insertActivity(ctx, tx, deal.ID, act)
	})
}

func (s *PostgresStore) RescheduleDeal(ctx context.Context, deal *models.Deal, expectedVersion int64, milestones []models.Milestone, act *models.Activity) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := updateDealRow(ctx, tx, deal, expectedVersion); err != nil {
			return err
		}

		// Lock the current rows so a concurrent completion either lands
		// before this check or fails its own version condition afterwards.
		rows, err := tx.QueryContext(ctx,
			`SELECT is_completed FROM deal_milestones WHERE deal_id = $1 FOR UPDATE`, deal.ID)
		if err != nil {
			return fmt.Errorf("lock milestones: %w", classify(err))
		}
		completed := false
		for rows.Next() {
			var done bool
			if err := rows.Scan(&done); err != nil {
				rows.Close()
				return fmt.Errorf("scan milestone: %w", classify(err))
			}
			completed = completed || done
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return classify(err)
		}
		if completed {
			return ErrMilestonesCompleted
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM deal_milestones WHERE deal_id = $1`, deal.ID); err != nil {
			return fmt.Errorf("delete milestones: %w", classify(err))
		}
		if err := insertMilestones(ctx, tx, deal.ID, milestones); err != nil {
			return err
		}
		return insertActivity(ctx, tx, deal.ID, act)
	})
}

func updateDealRow(ctx context.Context, q queryer, deal *models.Deal, expectedVersion int64) error {
	const stmt = `
        UPDATE deals
        SET status=$1, priority=$2, current_offer=$3, offer_date=$4, closing_date=$5,
            assigned_to=$6, updated_at=$7, version=$8
        WHERE id=$9 AND version=$10`
	res, err := q.ExecContext(ctx, stmt,
		deal.Status, deal.Priority, deal.CurrentOffer, deal.OfferDate, deal.ClosingDate,
		nullString(deal.AssignedTo), deal.UpdatedAt, deal.Version, deal.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update deal %s: %w", deal.ID, classify(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update deal %s: %w", deal.ID, classify(err))
	}
	if affected == 1 {
		return nil
	}
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM deals WHERE id = $1)`, deal.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check deal %s: %w", deal.ID, classify(err))
	}
	if !exists {
		return ErrNotFound
	}
	return ErrVersionConflict
}
