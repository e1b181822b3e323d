package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealdesk/internal/authz"
	"dealdesk/internal/metrics"
	"dealdesk/internal/models"
	"dealdesk/internal/repositories"
)

// Routing keys of published deal events.
const (
	EventDealCreated        = "deal.created"
	EventDealStatusChanged  = "deal.status_changed"
	EventDealOfferUpdated   = "deal.offer_updated"
	EventDealRescheduled    = "deal.rescheduled"
	EventMilestoneCompleted = "milestone.completed"
	EventMilestoneReopened  = "milestone.reopened"
	EventParticipantAdded   = "participant.added"
	EventParticipantRemoved = "participant.removed"
)

// EventPublisher delivers committed changes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, evt models.DealEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, models.DealEvent) error { return nil }

// Deps are the collaborators shared by the deal and milestone services.
type Deps struct {
	Store     repositories.DealStore
	Template  *MilestoneTemplate
	Publisher EventPublisher
	Logger    *zap.Logger
	Clock     func() time.Time
}

type base struct {
	store  repositories.DealStore
	guard  *authz.Guard
	events EventPublisher
	log    *zap.Logger
	clock  func() time.Time
}

func newBase(d Deps) base {
	b := base{
		store:  d.Store,
		guard:  authz.NewGuard(d.Store),
		events: d.Publisher,
		log:    d.Logger,
		clock:  d.Clock,
	}
	if b.events == nil {
		b.events = nopPublisher{}
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	return b
}

func (b *base) now() time.Time { return b.clock().UTC() }

// authorize runs the participant guard; lookup failures are lifted into the
// service taxonomy.
func (b *base) authorize(ctx context.Context, op, dealID string, actor authz.Actor, c authz.Capability) error {
	err := b.guard.Authorize(ctx, op, dealID, actor, c)
	if err == nil {
		return nil
	}
	var unauth *UnauthorizedParticipantError
	if errors.As(err, &unauth) {
		return err
	}
	return storeError(op, "deal", dealID, 0, err)
}

// observe counts and logs a failed operation. Deferred by every exported method.
func (b *base) observe(op string, actor authz.Actor, id string, errp *error) {
	err := *errp
	if err == nil {
		return
	}
	code := ErrorCode(err)
	metrics.RecordOperationError(op, code)
	if code == "concurrent_modification" {
		metrics.RecordConflict(op)
	}
	fields := []zap.Field{zap.String("op", op), zap.String("id", id), zap.String("actor", actor.ID), zap.String("code", code)}
	switch code {
	case "store_unavailable", "internal":
		b.log.Error("operation failed", append(fields, zap.Error(err))...)
	default:
		b.log.Debug("operation rejected", append(fields, zap.Error(err))...)
	}
}

func (b *base) publish(ctx context.Context, key string, actor authz.Actor, dealID string, version int64, data map[string]string) {
	evt := models.DealEvent{
		ID:         uuid.NewString(),
		Type:       key,
		DealID:     dealID,
		ActorID:    actor.ID,
		Version:    version,
		Data:       data,
		OccurredAt: b.now(),
	}
	if err := b.events.Publish(ctx, evt); err != nil {
		b.log.Warn("publish deal event", zap.String("routing_key", key), zap.String("deal_id", dealID), zap.Error(err))
	}
}

func (b *base) activity(actor authz.Actor, kind models.ActivityKind, detail map[string]string) *models.Activity {
	return &models.Activity{ActorID: actor.ID, Kind: kind, Detail: detail, CreatedAt: b.now()}
}

// checkVersion rejects a caller that read an older version than the current row.
func checkVersion(op, entity, id string, current int64, expected *int64) error {
	if expected != nil && *expected != current {
		return &ConcurrentModificationError{Op: op, Entity: entity, ID: id, Version: *expected}
	}
	return nil
}

func appendNotes(existing, add string) string {
	add = strings.TrimSpace(add)
	switch {
	case add == "":
		return existing
	case existing == "":
		return add
	}
	return existing + "\n" + add
}
