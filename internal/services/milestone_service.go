package services

import (
	"context"
	"strings"
	"time"

	"dealdesk/internal/authz"
	"dealdesk/internal/models"
)

const (
	OpCompleteMilestone   = "complete_milestone"
	OpUncompleteMilestone = "uncomplete_milestone"
	OpAnnotateMilestone   = "annotate_milestone"
	OpAdjustDueDate       = "adjust_milestone_due_date"
)

// MilestoneService records progress against a deal's milestone plan.
type MilestoneService struct {
	base
}

func NewMilestoneService(d Deps) *MilestoneService {
	return &MilestoneService{base: newBase(d)}
}

type CompleteInput struct {
	Notes string
	// Override allows completion while an earlier critical milestone is open.
	Override        bool
	ExpectedVersion *int64
}

// load guards the parent deal and fetches the milestone, which must belong to it.
func (s *MilestoneService) load(ctx context.Context, op string, actor authz.Actor, dealID, milestoneID string, expected *int64) (*models.Milestone, error) {
	if err := s.authorize(ctx, op, dealID, actor, authz.CapWriteMilestone); err != nil {
		return nil, err
	}
	m, err := s.store.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, storeError(op, "milestone", milestoneID, 0, err)
	}
	if m.DealID != dealID {
		return nil, &NotFoundError{Op: op, Entity: "milestone", ID: milestoneID}
	}
	if err := checkVersion(op, "milestone", milestoneID, m.Version, expected); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MilestoneService) save(ctx context.Context, op string, actor authz.Actor, current, updated *models.Milestone, kind models.ActivityKind, detail map[string]string) error {
	updated.Version = current.Version + 1
	updated.UpdatedAt = s.now()
	if detail == nil {
		detail = map[string]string{}
	}
	detail["milestone_id"] = current.ID
	detail["key"] = current.Key
	if err := s.store.UpdateMilestone(ctx, updated, current.Version, s.activity(actor, kind, detail)); err != nil {
		return storeError(op, "milestone", current.ID, current.Version, err)
	}
	return nil
}

// CompleteMilestone marks the milestone done. Completing an already
// completed milestone returns it unchanged.
func (s *MilestoneService) CompleteMilestone(ctx context.Context, actor authz.Actor, dealID, milestoneID string, in CompleteInput) (m *models.Milestone, err error) {
	defer s.observe(OpCompleteMilestone, actor, milestoneID, &err)

	current, err := s.load(ctx, OpCompleteMilestone, actor, dealID, milestoneID, in.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	if current.IsCompleted {
		return current, nil
	}
	if !in.Override {
		siblings, err := s.store.ListMilestones(ctx, dealID)
		if err != nil {
			return nil, storeError(OpCompleteMilestone, "deal", dealID, 0, err)
		}
		for _, o := range siblings {
			if o.IsCritical && !o.IsCompleted && o.SequenceIndex < current.SequenceIndex {
				return nil, &ValidationError{
					Op: OpCompleteMilestone, ID: milestoneID, Field: "sequence", Reason: "earlier_critical_open",
				}
			}
		}
	}

	now := s.now()
	updated := *current
	updated.IsCompleted = true
	updated.CompletedAt = &now
	updated.Notes = appendNotes(current.Notes, in.Notes)
	detail := map[string]string{}
	if in.Override {
		detail["override"] = "true"
	}
	if err := s.save(ctx, OpCompleteMilestone, actor, current, &updated, models.ActivityMilestoneCompleted, detail); err != nil {
		return nil, err
	}
	s.publish(ctx, EventMilestoneCompleted, actor, dealID, updated.Version, map[string]string{
		"milestone_id": updated.ID, "key": updated.Key,
	})
	return &updated, nil
}

// UncompleteMilestone clears a completion recorded by mistake.
func (s *MilestoneService) UncompleteMilestone(ctx context.Context, actor authz.Actor, dealID, milestoneID string, expected *int64) (m *models.Milestone, err error) {
	defer s.observe(OpUncompleteMilestone, actor, milestoneID, &err)

	current, err := s.load(ctx, OpUncompleteMilestone, actor, dealID, milestoneID, expected)
	if err != nil {
		return nil, err
	}
	if !current.IsCompleted {
		return current, nil
	}
	updated := *current
	updated.IsCompleted = false
	updated.CompletedAt = nil
	if err := s.save(ctx, OpUncompleteMilestone, actor, current, &updated, models.ActivityMilestoneReopened, nil); err != nil {
		return nil, err
	}
	s.publish(ctx, EventMilestoneReopened, actor, dealID, updated.Version, map[string]string{
		"milestone_id": updated.ID, "key": updated.Key,
	})
	return &updated, nil
}

// AnnotateMilestone appends notes without touching completion.
func (s *MilestoneService) AnnotateMilestone(ctx context.Context, actor authz.Actor, dealID, milestoneID, notes string, expected *int64) (m *models.Milestone, err error) {
	defer s.observe(OpAnnotateMilestone, actor, milestoneID, &err)

	current, err := s.load(ctx, OpAnnotateMilestone, actor, dealID, milestoneID, expected)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(notes) == "" {
		return nil, &ValidationError{Op: OpAnnotateMilestone, ID: milestoneID, Field: "notes", Reason: "required"}
	}
	updated := *current
	updated.Notes = appendNotes(current.Notes, notes)
	if err := s.save(ctx, OpAnnotateMilestone, actor, current, &updated, models.ActivityMilestoneAnnotated, nil); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AdjustDueDate moves one open milestone. The plan must stay ordered and
// inside the deal's offer and closing dates.
func (s *MilestoneService) AdjustDueDate(ctx context.Context, actor authz.Actor, dealID, milestoneID string, due time.Time, expected *int64) (m *models.Milestone, err error) {
	defer s.observe(OpAdjustDueDate, actor, milestoneID, &err)

	current, err := s.load(ctx, OpAdjustDueDate, actor, dealID, milestoneID, expected)
	if err != nil {
		return nil, err
	}
	if current.IsCompleted {
		return nil, &ValidationError{Op: OpAdjustDueDate, ID: milestoneID, Field: "milestone", Reason: "completed"}
	}
	deal, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, storeError(OpAdjustDueDate, "deal", dealID, 0, err)
	}
	due = models.DateOnly(due)
	if due.Before(deal.OfferDate) || due.After(deal.ClosingDate) {
		return nil, &ValidationError{Op: OpAdjustDueDate, ID: milestoneID, Field: "due_date", Reason: "outside_deal_dates"}
	}
	siblings, err := s.store.ListMilestones(ctx, dealID)
	if err != nil {
		return nil, storeError(OpAdjustDueDate, "deal", dealID, 0, err)
	}
	for _, o := range siblings {
		if (o.SequenceIndex < current.SequenceIndex && o.DueDate.After(due)) ||
			(o.SequenceIndex > current.SequenceIndex && o.DueDate.Before(due)) {
			return nil, &ValidationError{Op: OpAdjustDueDate, ID: milestoneID, Field: "due_date", Reason: "out_of_sequence"}
		}
	}

	updated := *current
	updated.DueDate = due
	detail := map[string]string{
		"from": current.DueDate.Format(time.DateOnly),
		"to":   due.Format(time.DateOnly),
	}
	if err := s.save(ctx, OpAdjustDueDate, actor, current, &updated, models.ActivityMilestoneRescheduled, detail); err != nil {
		return nil, err
	}
	return &updated, nil
}
