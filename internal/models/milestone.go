package models

import "time"

// Milestone is a dated checkpoint on a deal's target timeline.
type Milestone struct {
	ID            string     `json:"id"`
	DealID        string     `json:"deal_id"`
	Key           string     `json:"key"`
	MilestoneName string     `json:"milestone_name"`
	Description   string     `json:"description"`
	SequenceIndex int        `json:"sequence_index"`
	DueDate       time.Time  `json:"due_date"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	IsCritical    bool       `json:"is_critical"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Version       int64      `json:"version"`
}

// IsOverdue reports whether m is still open after its due date.
func (m Milestone) IsOverdue(now time.Time) bool {
	return !m.IsCompleted && now.After(m.DueDate)
}

// MilestoneDefinition is a template entry before it is attached to a deal.
type MilestoneDefinition struct {
	Key           string
	Name          string
	Description   string
	SequenceIndex int
	OffsetDays    int
	DueDate       time.Time
	IsCritical    bool
}

type TimelineStatus string

const (
	TimelineOnTrack TimelineStatus = "on_track"
	TimelineAtRisk  TimelineStatus = "at_risk"
	TimelineDelayed TimelineStatus = "delayed"
)

// TimelineMetrics is derived on every read and never stored.
type TimelineMetrics struct {
	ProgressPercentage     int            `json:"progress_percentage"`
	RemainingDays          int            `json:"remaining_days"`
	CompletedMilestones    int            `json:"completed_milestones"`
	TotalMilestones        int            `json:"total_milestones"`
	OverdueMilestones      int            `json:"overdue_milestones"`
	TotalDays              int            `json:"total_days"`
	ElapsedDays            int            `json:"elapsed_days"`
	TimeProgressPercentage int            `json:"time_progress_percentage"`
	OnTrack                bool           `json:"on_track"`
	Status                 TimelineStatus `json:"timeline_status"`
	OverdueCritical        []Milestone    `json:"overdue_critical"`
	CriticalPath           []Milestone    `json:"critical_path"`
	UpcomingDeadlines      []Milestone    `json:"upcoming_deadlines"`
}

// DealView is the read model returned to dashboards.
type DealView struct {
	Deal       Deal            `json:"deal"`
	Milestones []Milestone     `json:"milestones"`
	Metrics    TimelineMetrics `json:"metrics"`
	// AllowedTransitions are the statuses the deal may move to next.
	AllowedTransitions []DealStatus `json:"allowed_transitions"`
}

type PortfolioHealth string

const (
	HealthExcellent PortfolioHealth = "excellent"
	HealthGood      PortfolioHealth = "good"
	HealthFair      PortfolioHealth = "fair"
	HealthPoor      PortfolioHealth = "poor"
)

// PortfolioSummary aggregates timeline state over a user's active deals.
type PortfolioSummary struct {
	ActiveDeals       int             `json:"total_active_deals"`
	OverdueMilestones int             `json:"total_overdue_milestones"`
	UpcomingDeadlines int             `json:"total_upcoming_deadlines"`
	DealsAtRisk       int             `json:"deals_at_risk"`
	Health            PortfolioHealth `json:"timeline_health"`
}
