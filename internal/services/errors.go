package services

import (
	"errors"
	"fmt"

	"dealdesk/internal/authz"
	"dealdesk/internal/models"
	"dealdesk/internal/repositories"
)

// ValidationError reports malformed input. Field names the offending input.
type ValidationError struct {
	Op     string
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: invalid %s: %s", e.Op, e.ID, e.Field, e.Reason)
}

// InvalidTransitionError reports a status change outside the allowed graph.
type InvalidTransitionError struct {
	Op     string
	DealID string
	From   models.DealStatus
	To     models.DealStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %s: invalid transition %s -> %s", e.Op, e.DealID, e.From, e.To)
}

type UnauthorizedParticipantError = authz.UnauthorizedParticipantError

// ConcurrentModificationError reports a write conditioned on a stale version.
type ConcurrentModificationError struct {
	Op      string
	Entity  string // deal | milestone
	ID      string
	Version int64
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s changed since version %d", e.Op, e.Entity, e.ID, e.Version)
}

// MilestoneRegenerationBlockedError is returned when dates change on a deal
// that already has completed milestones.
type MilestoneRegenerationBlockedError struct {
	Op        string
	DealID    string
	Completed int
}

func (e *MilestoneRegenerationBlockedError) Error() string {
	return fmt.Sprintf("%s %s: %d milestones already completed", e.Op, e.DealID, e.Completed)
}

type StoreUnavailableError struct {
	Op  string
	ID  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s %s: store unavailable: %v", e.Op, e.ID, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Op     string
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %s not found", e.Op, e.Entity, e.ID)
}

// IsRetryable reports whether the caller may retry err after a fresh read.
func IsRetryable(err error) bool {
	var conflict *ConcurrentModificationError
	var unavailable *StoreUnavailableError
	return errors.As(err, &conflict) || errors.As(err, &unavailable)
}

// ErrorCode returns the machine code for err, used in API bodies and metrics labels.
func ErrorCode(err error) string {
	var (
		validation  *ValidationError
		transition  *InvalidTransitionError
		unauth      *UnauthorizedParticipantError
		conflict    *ConcurrentModificationError
		blocked     *MilestoneRegenerationBlockedError
		unavailable *StoreUnavailableError
		notFound    *NotFoundError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return "validation_failed"
	case errors.As(err, &transition):
		return "invalid_transition"
	case errors.As(err, &unauth):
		return "unauthorized_participant"
	case errors.As(err, &conflict):
		return "concurrent_modification"
	case errors.As(err, &blocked):
		return "milestone_regeneration_blocked"
	case errors.As(err, &unavailable):
		return "store_unavailable"
	case errors.As(err, &notFound):
		return "not_found"
	}
	return "internal"
}

// storeError lifts a store sentinel into the service taxonomy.
func storeError(op, entity, id string, version int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return &NotFoundError{Op: op, Entity: entity, ID: id}
	case errors.Is(err, repositories.ErrVersionConflict):
		return &ConcurrentModificationError{Op: op, Entity: entity, ID: id, Version: version}
	case errors.Is(err, repositories.ErrStoreUnavailable):
		return &StoreUnavailableError{Op: op, ID: id, Err: err}
	case errors.Is(err, repositories.ErrDuplicate):
		return &ValidationError{Op: op, ID: id, Field: entity, Reason: "duplicate"}
	case errors.Is(err, repositories.ErrMilestonesCompleted):
		return &MilestoneRegenerationBlockedError{Op: op, DealID: id}
	case errors.Is(err, repositories.ErrLastRequiredRole):
		return &ValidationError{Op: op, ID: id, Field: "participant", Reason: "last_required_role"}
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}
