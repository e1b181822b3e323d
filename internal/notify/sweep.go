package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dealdesk/internal/authz"
	"dealdesk/internal/metrics"
	"dealdesk/internal/models"
)

// DealSource lists active deals with their metrics.
type DealSource interface {
	ActiveDealViews(ctx context.Context, actor authz.Actor) ([]models.DealView, error)
}

type Once interface {
	AcquireOnce(ctx context.Context, key string) bool
}

type SweepResult struct {
	Deals      int
	Sent       int
	Duplicates int
	Failed     int
}

// Sweeper mails one escalation per deal for milestones that are both
// critical and overdue. Each (deal, milestone, day) is mailed at most once.
type Sweeper struct {
	deals  DealSource
	mailer EscalationMailer
	once   Once
	log    *zap.Logger
	clock  func() time.Time
}

func NewSweeper(deals DealSource, mailer EscalationMailer, once Once, log *zap.Logger, clock func() time.Time) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Sweeper{deals: deals, mailer: mailer, once: once, log: log, clock: clock}
}

func (s *Sweeper) Run(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	views, err := s.deals.ActiveDealViews(ctx, authz.Actor{ID: "escalation-sweep", GlobalAdmin: true})
	if err != nil {
		return res, fmt.Errorf("list active deals: %w", err)
	}
	now := s.clock().UTC()
	day := now.Format(time.DateOnly)
	res.Deals = len(views)

	for _, v := range views {
		var fresh []models.Milestone
		for _, ms := range v.Metrics.OverdueCritical {
			if s.once.AcquireOnce(ctx, fmt.Sprintf("escalation:%s:%s:%s", v.Deal.ID, ms.ID, day)) {
				fresh = append(fresh, ms)
			} else {
				res.Duplicates++
				metrics.RecordEscalation("duplicate")
			}
		}
		if len(fresh) == 0 {
			continue
		}
		if err := s.mailer.SendOverdueCritical(v.Deal, fresh, now); err != nil {
			res.Failed++
			metrics.RecordEscalation("failed")
			s.log.Error("escalation mail failed", zap.String("deal_id", v.Deal.ID), zap.Error(err))
			continue
		}
		res.Sent++
		metrics.RecordEscalation("sent")
		s.log.Info("escalation sent", zap.String("deal_id", v.Deal.ID), zap.Int("milestones", len(fresh)))
	}
	return res, nil
}
