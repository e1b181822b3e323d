package authz

import (
	"context"
	"fmt"

	"dealdesk/internal/models"
)

// ParticipantLookup returns the active participant rows of userID on dealID.
type ParticipantLookup interface {
	ActiveParticipants(ctx context.Context, dealID, userID string) ([]models.Participant, error)
}

// Guard decides whether an actor may read or mutate a deal.
type Guard struct {
	lookup ParticipantLookup
}

func NewGuard(lookup ParticipantLookup) *Guard {
	return &Guard{lookup: lookup}
}

// UnauthorizedParticipantError is returned when the actor has no active
// participant row on the deal or none of its roles grants the capability.
type UnauthorizedParticipantError struct {
	Op         string
	DealID     string
	ActorID    string
	Capability Capability
	Reason     string // not_participant | insufficient_role
}

func (e *UnauthorizedParticipantError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s deal %s (%s)", e.Op, e.ActorID, e.Capability, e.DealID, e.Reason)
}

// Authorize returns nil when actor holds capability c on dealID. Lookup errors
// are returned as is so the caller can classify them.
func (g *Guard) Authorize(ctx context.Context, op, dealID string, actor Actor, c Capability) error {
	if c == CapRead && actor.GlobalAdmin {
		return nil
	}
	rows, err := g.lookup.ActiveParticipants(ctx, dealID, actor.ID)
	if err != nil {
		return err
	}
	deny := &UnauthorizedParticipantError{Op: op, DealID: dealID, ActorID: actor.ID, Capability: c}
	active := 0
	for _, p := range rows {
		if !p.IsActive {
			continue
		}
		active++
		if Allows(p.Role, c) {
			return nil
		}
	}
	if active == 0 {
		deny.Reason = "not_participant"
	} else {
		deny.Reason = "insufficient_role"
	}
	return deny
}
