package services

import (
	"math"
	"time"

	"dealdesk/internal/models"
)

const referencePlanDays = 34

type checkpoint struct {
	key         string
	name        string
	description string
	planDay     int
}

// Canonical checkpoints with their day on the 34-day reference plan.
var checkpoints = []checkpoint{
	{"nda_execution", "NDA Execution", "Non-disclosure agreement signed by both parties", 3},
	{"document_review", "Financial & Document Review", "Financial statements and records under review", 7},
	{"due_diligence_complete", "Due Diligence Completion", "Due diligence findings accepted by the buyer", 14},
	{"negotiation_complete", "Negotiation Completion", "Price and terms agreed", 21},
	{"financing_approval", "Financing Approval", "Lender commitment received", 28},
	{"legal_review", "Legal Review", "Purchase agreement reviewed by counsel", 32},
	{"closing", "Closing", "Funds transferred and ownership passed", 34},
}

// DefaultCriticalKeys are the checkpoints escalated when overdue.
var DefaultCriticalKeys = []string{"due_diligence_complete", "financing_approval", "closing"}

// CheckpointKeys returns the template keys in sequence order.
func CheckpointKeys() []string {
	keys := make([]string, len(checkpoints))
	for i, c := range checkpoints {
		keys[i] = c.key
	}
	return keys
}

// MilestoneTemplate seeds a deal's milestone plan from its offer and closing dates.
type MilestoneTemplate struct {
	critical map[string]bool
}

// NewMilestoneTemplate marks criticalKeys as critical; an empty list selects
// DefaultCriticalKeys. Unknown keys are reported as a ValidationError.
func NewMilestoneTemplate(criticalKeys []string) (*MilestoneTemplate, error) {
	if len(criticalKeys) == 0 {
		criticalKeys = DefaultCriticalKeys
	}
	known := make(map[string]bool, len(checkpoints))
	for _, k := range CheckpointKeys() {
		known[k] = true
	}
	critical := make(map[string]bool, len(criticalKeys))
	for _, k := range criticalKeys {
		if !known[k] {
			return nil, &ValidationError{Op: "milestone_template", ID: k, Field: "critical_keys", Reason: "unknown_key"}
		}
		critical[k] = true
	}
	return &MilestoneTemplate{critical: critical}, nil
}

// Generate scales the reference plan to the span between offerDate and
// closingDate. Offsets are rounded to whole days and never decrease.
func (t *MilestoneTemplate) Generate(offerDate, closingDate time.Time) ([]models.MilestoneDefinition, error) {
	start := models.DateOnly(offerDate)
	span := models.DaysBetween(start, closingDate)
	if span <= 0 {
		return nil, &ValidationError{Op: "generate_milestones", Field: "closing_date", Reason: "not_after_offer_date"}
	}

	defs := make([]models.MilestoneDefinition, len(checkpoints))
	prev := 0
	for i, c := range checkpoints {
		offset := int(math.Round(float64(c.planDay*span) / referencePlanDays))
		if offset < prev {
			offset = prev
		}
		if offset > span {
			offset = span
		}
		prev = offset
		defs[i] = models.MilestoneDefinition{
			Key:           c.key,
			Name:          c.name,
			Description:   c.description,
			SequenceIndex: i + 1,
			OffsetDays:    offset,
			DueDate:       start.AddDate(0, 0, offset),
			IsCritical:    t.critical[c.key],
		}
	}
	return defs, nil
}

// Seed turns definitions into unsaved milestone rows.
func Seed(defs []models.MilestoneDefinition, now time.Time) []models.Milestone {
	out := make([]models.Milestone, len(defs))
	for i, d := range defs {
		out[i] = models.Milestone{
			Key:           d.Key,
			MilestoneName: d.Name,
			Description:   d.Description,
			SequenceIndex: d.SequenceIndex,
			DueDate:       d.DueDate,
			IsCritical:    d.IsCritical,
			CreatedAt:     now,
			UpdatedAt:     now,
			Version:       1,
		}
	}
	return out
}
