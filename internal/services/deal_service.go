package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dealdesk/internal/authz"
	"dealdesk/internal/metrics"
	"dealdesk/internal/models"
)

// Operation names carried by errors, logs and metrics.
const (
	OpCreateDeal         = "create_deal"
	OpTransitionStatus   = "transition_status"
	OpUpdateOffer        = "update_offer"
	OpUpdatePriority     = "update_priority"
	OpAssignIntermediary = "assign_intermediary"
	OpRescheduleDeal     = "reschedule_deal"
	OpGetDeal            = "get_deal"
	OpListDeals          = "list_deals"
	OpPortfolioSummary   = "portfolio_summary"
	OpListParticipants   = "list_participants"
	OpAddParticipant     = "add_participant"
	OpRemoveParticipant  = "remove_participant"
	OpListActivities     = "list_activities"
)

type DealService struct {
	base
	template *MilestoneTemplate
}

func NewDealService(d Deps) *DealService {
	tmpl := d.Template
	if tmpl == nil {
		tmpl, _ = NewMilestoneTemplate(nil)
	}
	return &DealService{base: newBase(d), template: tmpl}
}

type CreateDealInput struct {
	BuyerID      string
	SellerID     string
	ListingID    string
	InitialOffer decimal.Decimal
	OfferDate    time.Time
	ClosingDate  time.Time
	Priority     models.DealPriority
	AssignedTo   *string
}

// CreateDeal stores a new deal in initial_interest together with its buyer
// and seller participants and the seeded milestone plan. The actor must be
// the buyer, the seller or a global admin.
func (s *DealService) CreateDeal(ctx context.Context, actor authz.Actor, in CreateDealInput) (deal *models.Deal, err error) {
	defer s.observe(OpCreateDeal, actor, in.ListingID, &err)

	if actor.ID != in.BuyerID && actor.ID != in.SellerID && !actor.GlobalAdmin {
		return nil, &UnauthorizedParticipantError{
			Op: OpCreateDeal, ActorID: actor.ID, Capability: authz.CapWriteDeal, Reason: "not_participant",
		}
	}
	for _, f := range [][2]string{{"buyer_id", in.BuyerID}, {"seller_id", in.SellerID}, {"listing_id", in.ListingID}} {
		if strings.TrimSpace(f[1]) == "" {
			return nil, &ValidationError{Op: OpCreateDeal, ID: in.ListingID, Field: f[0], Reason: "required"}
		}
	}
	if in.InitialOffer.IsNegative() {
		return nil, &ValidationError{Op: OpCreateDeal, ID: in.ListingID, Field: "initial_offer", Reason: "negative"}
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if _, ok := models.ParseDealPriority(string(priority)); !ok {
		return nil, &ValidationError{Op: OpCreateDeal, ID: in.ListingID, Field: "priority", Reason: "unknown"}
	}
	defs, err := s.template.Generate(in.OfferDate, in.ClosingDate)
	if err != nil {
		var v *ValidationError
		if errors.As(err, &v) {
			v.Op, v.ID = OpCreateDeal, in.ListingID
		}
		return nil, err
	}

	now := s.now()
	deal = &models.Deal{
		BuyerID:      in.BuyerID,
		SellerID:     in.SellerID,
		ListingID:    in.ListingID,
		Status:       models.StatusInitialInterest,
		Priority:     priority,
		InitialOffer: in.InitialOffer,
		CurrentOffer: in.InitialOffer,
		OfferDate:    models.DateOnly(in.OfferDate),
		ClosingDate:  models.DateOnly(in.ClosingDate),
		AssignedTo:   in.AssignedTo,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
	participants := []models.Participant{
		{UserID: in.BuyerID, Role: models.RoleBuyer, IsActive: true, JoinedAt: now},
		{UserID: in.SellerID, Role: models.RoleSeller, IsActive: true, JoinedAt: now},
	}
	if in.AssignedTo != nil && *in.AssignedTo != "" {
		participants = append(participants, models.Participant{
			UserID: *in.AssignedTo, Role: models.RoleBroker, IsActive: true, JoinedAt: now,
		})
	}
	act := s.activity(actor, models.ActivityDealCreated, map[string]string{
		"listing_id":    in.ListingID,
		"initial_offer": in.InitialOffer.String(),
	})
	if err := s.store.CreateDeal(ctx, deal, participants, Seed(defs, now), act); err != nil {
		return nil, storeError(OpCreateDeal, "deal", in.ListingID, 0, err)
	}

	s.log.Info("deal created",
		zap.String("deal_id", deal.ID), zap.String("deal_number", deal.DealNumber), zap.String("actor", actor.ID))
	s.publish(ctx, EventDealCreated, actor, deal.ID, deal.Version, map[string]string{
		"deal_number": deal.DealNumber,
		"listing_id":  deal.ListingID,
	})
	return deal, nil
}

// mutateDeal is the guard, read, apply, conditional-write cycle shared by
// every single-row deal update. Input checks belong in apply so the guard
// always runs first. apply mutates the copy and returns the activity detail.
func (s *DealService) mutateDeal(
	ctx context.Context, op string, actor authz.Actor, dealID string, expected *int64,
	kind models.ActivityKind, apply func(d *models.Deal) (map[string]string, error),
) (*models.Deal, error) {
	if err := s.authorize(ctx, op, dealID, actor, authz.CapWriteDeal); err != nil {
		return nil, err
	}
	current, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, storeError(op, "deal", dealID, 0, err)
	}
	if err := checkVersion(op, "deal", dealID, current.Version, expected); err != nil {
		return nil, err
	}
	updated := *current
	detail, err := apply(&updated)
	if err != nil {
		return nil, err
	}
	updated.Version = current.Version + 1
	updated.UpdatedAt = s.now()
	if err := s.store.UpdateDeal(ctx, &updated, current.Version, s.activity(actor, kind, detail)); err != nil {
		return nil, storeError(op, "deal", dealID, current.Version, err)
	}
	return &updated, nil
}

// TransitionStatus moves the deal one step along the main sequence or into
// cancelled or expired.
func (s *DealService) TransitionStatus(ctx context.Context, actor authz.Actor, dealID string, target models.DealStatus, expected *int64) (deal *models.Deal, err error) {
	defer s.observe(OpTransitionStatus, actor, dealID, &err)

	var from models.DealStatus
	deal, err = s.mutateDeal(ctx, OpTransitionStatus, actor, dealID, expected, models.ActivityStatusChanged,
		func(d *models.Deal) (map[string]string, error) {
			if _, ok := models.ParseDealStatus(string(target)); !ok {
				return nil, &ValidationError{Op: OpTransitionStatus, ID: dealID, Field: "status", Reason: "unknown"}
			}
			from = d.Status
			if !CanTransition(d.Status, target) {
				return nil, &InvalidTransitionError{Op: OpTransitionStatus, DealID: dealID, From: d.Status, To: target}
			}
			d.Status = target
			return map[string]string{"from": string(from), "to": string(target)}, nil
		})
	if err != nil {
		return nil, err
	}
	metrics.RecordTransition(string(from), string(target))
	s.publish(ctx, EventDealStatusChanged, actor, deal.ID, deal.Version, map[string]string{
		"from": string(from), "to": string(target),
	})
	return deal, nil
}

func (s *DealService) UpdateOffer(ctx context.Context, actor authz.Actor, dealID string, offer decimal.Decimal, expected *int64) (deal *models.Deal, err error) {
	defer s.observe(OpUpdateOffer, actor, dealID, &err)

	var previous decimal.Decimal
	deal, err = s.mutateDeal(ctx, OpUpdateOffer, actor, dealID, expected, models.ActivityOfferUpdated,
		func(d *models.Deal) (map[string]string, error) {
			if offer.IsNegative() {
				return nil, &ValidationError{Op: OpUpdateOffer, ID: dealID, Field: "current_offer", Reason: "negative"}
			}
			if d.Status.IsTerminal() {
				return nil, &ValidationError{Op: OpUpdateOffer, ID: dealID, Field: "status", Reason: "terminal"}
			}
			previous = d.CurrentOffer
			d.CurrentOffer = offer
			return map[string]string{"from": previous.String(), "to": offer.String()}, nil
		})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventDealOfferUpdated, actor, deal.ID, deal.Version, map[string]string{
		"from": previous.String(), "to": offer.String(),
	})
	return deal, nil
}

func (s *DealService) UpdatePriority(ctx context.Context, actor authz.Actor, dealID string, priority models.DealPriority, expected *int64) (deal *models.Deal, err error) {
	defer s.observe(OpUpdatePriority, actor, dealID, &err)

	return s.mutateDeal(ctx, OpUpdatePriority, actor, dealID, expected, models.ActivityPriorityUpdated,
		func(d *models.Deal) (map[string]string, error) {
			if _, ok := models.ParseDealPriority(string(priority)); !ok {
				return nil, &ValidationError{Op: OpUpdatePriority, ID: dealID, Field: "priority", Reason: "unknown"}
			}
			if d.Status.IsTerminal() {
				return nil, &ValidationError{Op: OpUpdatePriority, ID: dealID, Field: "status", Reason: "terminal"}
			}
			from := d.Priority
			d.Priority = priority
			return map[string]string{"from": string(from), "to": string(priority)}, nil
		})
}

// AssignIntermediary sets or clears (nil) the deal's assigned intermediary.
// Access for the intermediary still comes from a participant row.
func (s *DealService) AssignIntermediary(ctx context.Context, actor authz.Actor, dealID string, userID *string, expected *int64) (deal *models.Deal, err error) {
	defer s.observe(OpAssignIntermediary, actor, dealID, &err)

	if userID != nil && strings.TrimSpace(*userID) == "" {
		userID = nil
	}
	return s.mutateDeal(ctx, OpAssignIntermediary, actor, dealID, expected, models.ActivityAssigneeUpdated,
		func(d *models.Deal) (map[string]string, error) {
			if d.Status.IsTerminal() {
				return nil, &ValidationError{Op: OpAssignIntermediary, ID: dealID, Field: "status", Reason: "terminal"}
			}
			d.AssignedTo = userID
			to := ""
			if userID != nil {
				to = *userID
			}
			return map[string]string{"assigned_to": to}, nil
		})
}

// RescheduleDeal changes the offer and closing dates and regenerates the
// milestone plan. It is refused once any milestone has been completed.
func (s *DealService) RescheduleDeal(ctx context.Context, actor authz.Actor, dealID string, offerDate, closingDate time.Time, expected *int64) (view *models.DealView, err error) {
	defer s.observe(OpRescheduleDeal, actor, dealID, &err)

	if err := s.authorize(ctx, OpRescheduleDeal, dealID, actor, authz.CapWriteDeal); err != nil {
		return nil, err
	}
	current, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, storeError(OpRescheduleDeal, "deal", dealID, 0, err)
	}
	if err := checkVersion(OpRescheduleDeal, "deal", dealID, current.Version, expected); err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, &ValidationError{Op: OpRescheduleDeal, ID: dealID, Field: "status", Reason: "terminal"}
	}
	defs, err := s.template.Generate(offerDate, closingDate)
	if err != nil {
		var v *ValidationError
		if errors.As(err, &v) {
			v.Op, v.ID = OpRescheduleDeal, dealID
		}
		return nil, err
	}
	existing, err := s.store.ListMilestones(ctx, dealID)
	if err != nil {
		return nil, storeError(OpRescheduleDeal, "deal", dealID, current.Version, err)
	}
	completed := 0
	for _, m := range existing {
		if m.IsCompleted {
			completed++
		}
	}
	if completed > 0 {
		return nil, &MilestoneRegenerationBlockedError{Op: OpRescheduleDeal, DealID: dealID, Completed: completed}
	}

	now := s.now()
	updated := *current
	updated.OfferDate = models.DateOnly(offerDate)
	updated.ClosingDate = models.DateOnly(closingDate)
	updated.Version = current.Version + 1
	updated.UpdatedAt = now
	milestones := Seed(defs, now)
	detail := map[string]string{
		"offer_date":   updated.OfferDate.Format(time.DateOnly),
		"closing_date": updated.ClosingDate.Format(time.DateOnly),
	}
	act := s.activity(actor, models.ActivityDealRescheduled, detail)
	if err := s.store.RescheduleDeal(ctx, &updated, current.Version, milestones, act); err != nil {
		return nil, storeError(OpRescheduleDeal, "deal", dealID, current.Version, err)
	}

	s.publish(ctx, EventDealRescheduled, actor, dealID, updated.Version, detail)
	v := newDealView(updated, milestones, now)
	return &v, nil
}

// GetDealWithMetrics returns the deal, its milestones in sequence order and
// the derived timeline figures.
func (s *DealService) GetDealWithMetrics(ctx context.Context, actor authz.Actor, dealID string) (view *models.DealView, err error) {
	defer s.observe(OpGetDeal, actor, dealID, &err)

	if err := s.authorize(ctx, OpGetDeal, dealID, actor, authz.CapRead); err != nil {
		return nil, err
	}
	return s.loadView(ctx, OpGetDeal, dealID)
}

func (s *DealService) loadView(ctx context.Context, op, dealID string) (*models.DealView, error) {
	deal, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, storeError(op, "deal", dealID, 0, err)
	}
	milestones, err := s.store.ListMilestones(ctx, dealID)
	if err != nil {
		return nil, storeError(op, "deal", dealID, 0, err)
	}
	v := newDealView(*deal, milestones, s.now())
	return &v, nil
}

func newDealView(d models.Deal, milestones []models.Milestone, now time.Time) models.DealView {
	if milestones == nil {
		milestones = []models.Milestone{}
	}
	next := AllowedTransitions(d.Status)
	if next == nil {
		next = []models.DealStatus{}
	}
	return models.DealView{
		Deal:               d,
		Milestones:         milestones,
		Metrics:            ComputeTimelineMetrics(d, milestones, now),
		AllowedTransitions: next,
	}
}

// ListMyDeals returns the deals the actor takes part in or is assigned to.
func (s *DealService) ListMyDeals(ctx context.Context, actor authz.Actor, activeOnly bool) (deals []models.Deal, err error) {
	defer s.observe(OpListDeals, actor, actor.ID, &err)

	id := actor.ID
	deals, err = s.store.ListDeals(ctx, models.DealFilter{UserID: &id, ActiveOnly: activeOnly})
	if err != nil {
		return nil, storeError(OpListDeals, "user", actor.ID, 0, err)
	}
	if deals == nil {
		deals = []models.Deal{}
	}
	return deals, nil
}

// ActiveDealViews returns every non-terminal deal with metrics. Global admins only.
func (s *DealService) ActiveDealViews(ctx context.Context, actor authz.Actor) (views []models.DealView, err error) {
	defer s.observe(OpListDeals, actor, "*", &err)

	if !actor.GlobalAdmin {
		return nil, &UnauthorizedParticipantError{
			Op: OpListDeals, DealID: "*", ActorID: actor.ID, Capability: authz.CapRead, Reason: "not_participant",
		}
	}
	deals, err := s.store.ListDeals(ctx, models.DealFilter{ActiveOnly: true})
	if err != nil {
		return nil, storeError(OpListDeals, "deal", "*", 0, err)
	}
	return s.views(ctx, OpListDeals, deals)
}

func (s *DealService) views(ctx context.Context, op string, deals []models.Deal) ([]models.DealView, error) {
	now := s.now()
	out := make([]models.DealView, 0, len(deals))
	for _, d := range deals {
		milestones, err := s.store.ListMilestones(ctx, d.ID)
		if err != nil {
			return nil, storeError(op, "deal", d.ID, 0, err)
		}
		out = append(out, newDealView(d, milestones, now))
	}
	return out, nil
}

// PortfolioSummary aggregates timeline health over the actor's active deals.
func (s *DealService) PortfolioSummary(ctx context.Context, actor authz.Actor) (summary *models.PortfolioSummary, err error) {
	defer s.observe(OpPortfolioSummary, actor, actor.ID, &err)

	id := actor.ID
	deals, err := s.store.ListDeals(ctx, models.DealFilter{UserID: &id, ActiveOnly: true})
	if err != nil {
		return nil, storeError(OpPortfolioSummary, "user", actor.ID, 0, err)
	}
	views, err := s.views(ctx, OpPortfolioSummary, deals)
	if err != nil {
		return nil, err
	}
	summary = &models.PortfolioSummary{ActiveDeals: len(views)}
	for _, v := range views {
		summary.OverdueMilestones += v.Metrics.OverdueMilestones
		summary.UpcomingDeadlines += len(v.Metrics.UpcomingDeadlines)
		if v.Metrics.ProgressPercentage < v.Metrics.TimeProgressPercentage-atRiskTolerance {
			summary.DealsAtRisk++
		}
	}
	summary.Health = portfolioHealth(summary.ActiveDeals, summary.OverdueMilestones, summary.DealsAtRisk)
	return summary, nil
}

func (s *DealService) ListParticipants(ctx context.Context, actor authz.Actor, dealID string) (ps []models.Participant, err error) {
	defer s.observe(OpListParticipants, actor, dealID, &err)

	if err := s.authorize(ctx, OpListParticipants, dealID, actor, authz.CapRead); err != nil {
		return nil, err
	}
	ps, err = s.store.ListParticipants(ctx, dealID)
	if err != nil {
		return nil, storeError(OpListParticipants, "deal", dealID, 0, err)
	}
	if ps == nil {
		ps = []models.Participant{}
	}
	return ps, nil
}

func (s *DealService) AddParticipant(ctx context.Context, actor authz.Actor, dealID, userID string, role models.ParticipantRole) (p *models.Participant, err error) {
	defer s.observe(OpAddParticipant, actor, dealID, &err)

	if err := s.authorize(ctx, OpAddParticipant, dealID, actor, authz.CapWriteDeal); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, &ValidationError{Op: OpAddParticipant, ID: dealID, Field: "user_id", Reason: "required"}
	}
	if _, ok := models.ParseParticipantRole(string(role)); !ok {
		return nil, &ValidationError{Op: OpAddParticipant, ID: dealID, Field: "role", Reason: "unknown"}
	}
	deal, err := s.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, storeError(OpAddParticipant, "deal", dealID, 0, err)
	}
	if deal.Status.IsTerminal() {
		return nil, &ValidationError{Op: OpAddParticipant, ID: dealID, Field: "status", Reason: "terminal"}
	}

	p = &models.Participant{DealID: dealID, UserID: userID, Role: role, IsActive: true, JoinedAt: s.now()}
	detail := map[string]string{"user_id": userID, "role": string(role)}
	if err := s.store.AddParticipant(ctx, p, s.activity(actor, models.ActivityParticipantAdded, detail)); err != nil {
		return nil, storeError(OpAddParticipant, "participant", dealID, 0, err)
	}
	s.publish(ctx, EventParticipantAdded, actor, dealID, deal.Version, detail)
	return p, nil
}

// RemoveParticipant deactivates a participant row. The last active buyer or
// seller cannot be removed.
func (s *DealService) RemoveParticipant(ctx context.Context, actor authz.Actor, dealID, participantID string) (p *models.Participant, err error) {
	defer s.observe(OpRemoveParticipant, actor, dealID, &err)

	if err := s.authorize(ctx, OpRemoveParticipant, dealID, actor, authz.CapWriteDeal); err != nil {
		return nil, err
	}
	now := s.now()
	act := s.activity(actor, models.ActivityParticipantRemoved, map[string]string{"participant_id": participantID})
	p, err = s.store.DeactivateParticipant(ctx, dealID, participantID, now, act)
	if err != nil {
		return nil, storeError(OpRemoveParticipant, "participant", participantID, 0, err)
	}
	if p.LeftAt != nil && p.LeftAt.Equal(now) {
		s.publish(ctx, EventParticipantRemoved, actor, dealID, 0, map[string]string{
			"participant_id": p.ID, "user_id": p.UserID, "role": string(p.Role),
		})
	}
	return p, nil
}

func (s *DealService) ListActivities(ctx context.Context, actor authz.Actor, dealID string) (acts []models.Activity, err error) {
	defer s.observe(OpListActivities, actor, dealID, &err)

	if err := s.authorize(ctx, OpListActivities, dealID, actor, authz.CapRead); err != nil {
		return nil, err
	}
	acts, err = s.store.ListActivities(ctx, dealID)
	if err != nil {
		return nil, storeError(OpListActivities, "deal", dealID, 0, err)
	}
	if acts == nil {
		acts = []models.Activity{}
	}
	return acts, nil
}
