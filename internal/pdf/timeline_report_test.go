package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/models"
)

func TestTimelineReport(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	done := day(4)
	view := models.DealView{
		Deal: models.Deal{
			ID:           "d1",
			DealNumber:   "DEAL-2024-000001",
			ListingID:    "listing-1",
			Status:       models.StatusDueDiligence,
			Priority:     models.PriorityHigh,
			CurrentOffer: decimal.RequireFromString("450000"),
			OfferDate:    day(1),
			ClosingDate:  day(31),
		},
		Milestones: []models.Milestone{
			{SequenceIndex: 1, MilestoneName: "NDA Execution", DueDate: day(4), IsCompleted: true, CompletedAt: &done},
			{SequenceIndex: 2, MilestoneName: "Due Diligence Completion", DueDate: day(10), IsCritical: true},
		},
		Metrics: models.TimelineMetrics{
			CompletedMilestones: 1, TotalMilestones: 2, ProgressPercentage: 50,
			OverdueCritical: []models.Milestone{{MilestoneName: "Due Diligence Completion", DueDate: day(10)}},
			Status:          models.TimelineDelayed,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDocumentGenerator("").TimelineReport(&buf, view, day(12)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}
