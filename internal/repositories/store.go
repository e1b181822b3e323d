package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealdesk/internal/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrVersionConflict     = errors.New("version conflict")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrDuplicate           = errors.New("duplicate record")
	ErrMilestonesCompleted = errors.New("deal has completed milestones")
	ErrLastRequiredRole    = errors.New("last active buyer or seller")
)

// DealStore is the record store behind the deal engine.
//
// Conditional writes take the version the caller read; the caller sets the
// new Version on the record before calling. A mismatch returns
// ErrVersionConflict and writes nothing. Every mutation may carry an
// activity entry which is written atomically with it.
type DealStore interface {
	CreateDeal(ctx context.Context, deal *models.Deal, participants []models.Participant, milestones []models.Milestone, act *models.Activity) error
	GetDeal(ctx context.Context, id string) (*models.Deal, error)
	ListDeals(ctx context.Context, filter models.DealFilter) ([]models.Deal, error)
	UpdateDeal(ctx context.Context, deal *models.Deal, expectedVersion int64, act *models.Activity) error
	// RescheduleDeal updates the deal dates and replaces all its milestones.
	// It fails with ErrMilestonesCompleted if any current milestone is completed.
	RescheduleDeal(ctx context.Context, deal *models.Deal, expectedVersion int64, milestones []models.Milestone, act *models.Activity) error

	ActiveParticipants(ctx context.Context, dealID, userID string) ([]models.Participant, error)
	ListParticipants(ctx context.Context, dealID string) ([]models.Participant, error)
	AddParticipant(ctx context.Context, p *models.Participant, act *models.Activity) error
	// DeactivateParticipant fails with ErrLastRequiredRole when p is the last
	// active buyer or seller of the deal.
	DeactivateParticipant(ctx context.Context, dealID, participantID string, at time.Time, act *models.Activity) (*models.Participant, error)

	GetMilestone(ctx context.Context, id string) (*models.Milestone, error)
	ListMilestones(ctx context.Context, dealID string) ([]models.Milestone, error)
	UpdateMilestone(ctx context.Context, m *models.Milestone, expectedVersion int64, act *models.Activity) error

	ListActivities(ctx context.Context, dealID string) ([]models.Activity, error)
}

// FormatDealNumber renders the human readable deal number.
func FormatDealNumber(createdAt time.Time, seq int64) string {
	return fmt.Sprintf("DEAL-%d-%06d", createdAt.UTC().Year(), seq)
}
