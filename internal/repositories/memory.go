package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"dealdesk/internal/models"
)

// MemoryStore implements DealStore with in-process maps. It backs tests and
// local runs without a database; all writes are serialized by one mutex so
// multi-row operations are atomic.
type MemoryStore struct {
	mu sync.RWMutex

	deals        map[string]*models.Deal
	participants map[string]*models.Participant
	milestones   map[string]*models.Milestone
	activities   map[string][]*models.Activity // dealID -> entries in insert order

	dealSeq int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		deals:        make(map[string]*models.Deal),
		participants: make(map[string]*models.Participant),
		milestones:   make(map[string]*models.Milestone),
		activities:   make(map[string][]*models.Activity),
	}
}

func (s *MemoryStore) CreateDeal(ctx context.Context, deal *models.Deal, participants []models.Participant, milestones []models.Milestone, act *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deal.ID == "" {
		deal.ID = uuid.NewString()
	}
	if _, exists := s.deals[deal.ID]; exists {
		return ErrDuplicate
	}
	s.dealSeq++
	deal.DealNumber = FormatDealNumber(deal.CreatedAt, s.dealSeq)
	if deal.Version == 0 {
		deal.Version = 1
	}
	s.deals[deal.ID] = copyDeal(deal)

	for i := range participants {
		p := &participants[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.DealID = deal.ID
		cp := *p
		s.participants[p.ID] = &cp
	}
	for i := range milestones {
		m := &milestones[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.DealID = deal.ID
		if m.Version == 0 {
			m.Version = 1
		}
		s.milestones[m.ID] = copyMilestone(m)
	}
	s.appendActivityLocked(deal.ID, act)
	return nil
}

func (s *MemoryStore) GetDeal(ctx context.Context, id string) (*models.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.deals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDeal(d), nil
}

func (s *MemoryStore) ListDeals(ctx context.Context, filter models.DealFilter) ([]models.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var member map[string]bool
	if filter.UserID != nil {
		member = make(map[string]bool)
		for _, p := range s.participants {
			if p.IsActive && p.UserID == *filter.UserID {
				member[p.DealID] = true
			}
		}
	}

	out := make([]models.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		if filter.ActiveOnly && d.Status.IsTerminal() {
			continue
		}
		if member != nil {
			assigned := d.AssignedTo != nil && *d.AssignedTo == *filter.UserID
			if !member[d.ID] && !assigned {
				continue
			}
		}
		out = append(out, *copyDeal(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].DealNumber > out[j].DealNumber
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateDeal(ctx context.Context, deal *models.Deal, expectedVersion int64, act *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDealVersionLocked(deal.ID, expectedVersion); err != nil {
		return err
	}
	s.deals[deal.ID] = copyDeal(deal)
	s.appendActivityLocked(deal.ID, act)
	return nil
}

func (s *MemoryStore) RescheduleDeal(ctx context.Context, deal *models.Deal, expectedVersion int64, milestones []models.Milestone, act *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDealVersionLocked(deal.ID, expectedVersion); err != nil {
		return err
	}
	var old []string
	for id, m := range s.milestones {
		if m.DealID != deal.ID {
			continue
		}
		if m.IsCompleted {
			return ErrMilestonesCompleted
		}
		old = append(old, id)
	}
	for _, id := range old {
		delete(s.milestones, id)
	}
	for i := range milestones {
		m := &milestones[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.DealID = deal.ID
		if m.Version == 0 {
			m.Version = 1
		}
		s.milestones[m.ID] = copyMilestone(m)
	}
	s.deals[deal.ID] = copyDeal(deal)
	s.appendActivityLocked(deal.ID, act)
	return nil
}

func (s *MemoryStore) ActiveParticipants(ctx context.Context, dealID, userID string) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Participant
	for _, p := range s.participants {
		if p.DealID == dealID && p.UserID == userID && p.IsActive {
			out = append(out, *p)
		}
	}
	sortParticipants(out)
	return out, nil
}

func (s *MemoryStore) ListParticipants(ctx context.Context, dealID string) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Participant
	for _, p := range s.participants {
		if p.DealID == dealID {
			out = append(out, *p)
		}
	}
	sortParticipants(out)
	return out, nil
}

func (s *MemoryStore) AddParticipant(ctx context.Context, p *models.Participant, act *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deals[p.DealID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.participants {
		if existing.IsActive && existing.DealID == p.DealID && existing.UserID == p.UserID && existing.Role == p.Role {
			return ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	s.participants[p.ID] = &cp
	s.appendActivityLocked(p.DealID, act)
	return nil
}

func (s *MemoryStore) DeactivateParticipant(ctx context.Context, dealID, participantID string, at time.Time, act *models.Activity) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantID]
	if !ok || p.DealID != dealID {
		return nil, ErrNotFound
	}
	if !p.IsActive {
		cp := *p
		return &cp, nil
	}
	if p.Role == models.RoleBuyer || p.Role == models.RoleSeller {
		others := 0
		for _, o := range s.participants {
			if o.ID != p.ID && o.DealID == dealID && o.IsActive && o.Role == p.Role {
				others++
			}
		}
		if others == 0 {
			return nil, ErrLastRequiredRole
		}
	}
	left := at
	p.IsActive = false
	p.LeftAt = &left
	s.appendActivityLocked(dealID, act)
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.milestones[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyMilestone(m), nil
}

func (s *MemoryStore) ListMilestones(ctx context.Context, dealID string) ([]models.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Milestone
	for _, m := range s.milestones {
		if m.DealID == dealID {
			out = append(out, *copyMilestone(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceIndex < out[j].SequenceIndex })
	return out, nil
}

func (s *MemoryStore) UpdateMilestone(ctx context.Context, m *models.Milestone, expectedVersion int64, act *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.milestones[m.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != expectedVersion {
		return ErrVersionConflict
	}
	s.milestones[m.ID] = copyMilestone(m)
	s.appendActivityLocked(m.DealID, act)
	return nil
}

func (s *MemoryStore) ListActivities(ctx context.Context, dealID string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.activities[dealID]
	out := make([]models.Activity, 0, len(entries))
	for _, a := range entries {
		out = append(out, *copyActivity(a))
	}
	return out, nil
}

func (s *MemoryStore) checkDealVersionLocked(id string, expected int64) error {
	cur, ok := s.deals[id]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != expected {
		return ErrVersionConflict
	}
	return nil
}

func (s *MemoryStore) appendActivityLocked(dealID string, act *models.Activity) {
	if act == nil {
		return
	}
	if act.ID == "" {
		act.ID = uuid.NewString()
	}
	act.DealID = dealID
	s.activities[dealID] = append(s.activities[dealID], copyActivity(act))
}

func sortParticipants(ps []models.Participant) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].JoinedAt.Equal(ps[j].JoinedAt) {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].JoinedAt.Before(ps[j].JoinedAt)
	})
}

func copyDeal(d *models.Deal) *models.Deal {
	cp := *d
	if d.AssignedTo != nil {
		v := *d.AssignedTo
		cp.AssignedTo = &v
	}
	return &cp
}

func copyMilestone(m *models.Milestone) *models.Milestone {
	cp := *m
	if m.CompletedAt != nil {
		v := *m.CompletedAt
		cp.CompletedAt = &v
	}
	return &cp
}

func copyActivity(a *models.Activity) *models.Activity {
	cp := *a
	if a.Detail != nil {
		cp.Detail = make(map[string]string, len(a.Detail))
		for k, v := range a.Detail {
			cp.Detail[k] = v
		}
	}
	return &cp
}
