package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/models"
)

// referenceDeal returns a 2024-01-01 -> 2024-02-04 deal with its seeded plan
// and the milestones at the given indexes completed.
func referenceDeal(t *testing.T, completed ...int) (models.Deal, []models.Milestone) {
	t.Helper()
	tmpl, err := NewMilestoneTemplate(nil)
	require.NoError(t, err)
	deal := models.Deal{ID: "d1", OfferDate: day(2024, 1, 1), ClosingDate: day(2024, 2, 4), Status: models.StatusNegotiation}
	defs, err := tmpl.Generate(deal.OfferDate, deal.ClosingDate)
	require.NoError(t, err)
	ms := Seed(defs, deal.OfferDate)
	for _, i := range completed {
		at := ms[i].DueDate
		ms[i].IsCompleted = true
		ms[i].CompletedAt = &at
	}
	return deal, ms
}

func TestMetricsProgressRounds(t *testing.T) {
	deal, ms := referenceDeal(t, 0, 1)
	m := ComputeTimelineMetrics(deal, ms, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, 29, m.ProgressPercentage)
	assert.Equal(t, 2, m.CompletedMilestones)
	assert.Equal(t, 7, m.TotalMilestones)
	assert.Equal(t, 0, m.OverdueMilestones)
	assert.Equal(t, 30, m.RemainingDays)
	assert.Equal(t, 34, m.TotalDays)
	assert.Equal(t, 4, m.ElapsedDays)
	assert.Equal(t, 12, m.TimeProgressPercentage)
	assert.True(t, m.OnTrack)
	assert.Equal(t, models.TimelineOnTrack, m.Status)

	// Completed milestones never count as upcoming; due diligence is ten days out.
	assert.Empty(t, m.UpcomingDeadlines)
	require.Len(t, m.CriticalPath, 3)
	assert.Equal(t, "due_diligence_complete", m.CriticalPath[0].Key)
	assert.Empty(t, m.OverdueCritical)

	later := ComputeTimelineMetrics(deal, ms, time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC))
	require.Len(t, later.UpcomingDeadlines, 1)
	assert.Equal(t, "due_diligence_complete", later.UpcomingDeadlines[0].Key)
}

func TestMetricsDelayedWhenOverdue(t *testing.T) {
	deal, ms := referenceDeal(t, 0, 1)
	m := ComputeTimelineMetrics(deal, ms, time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, m.OverdueMilestones)
	assert.Equal(t, models.TimelineDelayed, m.Status)
	require.Len(t, m.OverdueCritical, 1)
	assert.Equal(t, "due_diligence_complete", m.OverdueCritical[0].Key)
	require.Len(t, m.UpcomingDeadlines, 1)
	assert.Equal(t, "negotiation_complete", m.UpcomingDeadlines[0].Key)
}

func TestMetricsAtRisk(t *testing.T) {
	deal, ms := referenceDeal(t, 0, 1, 2)
	m := ComputeTimelineMetrics(deal, ms, time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 43, m.ProgressPercentage)
	assert.Equal(t, 59, m.TimeProgressPercentage)
	assert.Equal(t, 0, m.OverdueMilestones)
	assert.False(t, m.OnTrack)
	assert.Equal(t, models.TimelineAtRisk, m.Status)
}

func TestMetricsBeforeOfferAndAfterClosing(t *testing.T) {
	deal, ms := referenceDeal(t)

	before := ComputeTimelineMetrics(deal, ms, day(2023, 12, 25))
	assert.Equal(t, 0, before.ElapsedDays)
	assert.Equal(t, 0, before.TimeProgressPercentage)
	assert.Equal(t, 41, before.RemainingDays)
	assert.Equal(t, models.TimelineOnTrack, before.Status)

	after := ComputeTimelineMetrics(deal, ms, day(2024, 3, 1))
	assert.Equal(t, 0, after.RemainingDays)
	assert.Equal(t, 100, after.TimeProgressPercentage)
	assert.Equal(t, 7, after.OverdueMilestones)
	assert.Equal(t, models.TimelineDelayed, after.Status)
}

func TestMetricsWithoutMilestones(t *testing.T) {
	deal, _ := referenceDeal(t)
	m := ComputeTimelineMetrics(deal, nil, day(2024, 1, 10))

	assert.Equal(t, 0, m.ProgressPercentage)
	assert.Equal(t, 0, m.TotalMilestones)
	assert.NotNil(t, m.UpcomingDeadlines)
	assert.NotNil(t, m.OverdueCritical)
}

func TestProgressReaches100OnlyWhenComplete(t *testing.T) {
	deal, _ := referenceDeal(t)
	ms := make([]models.Milestone, 200)
	for i := range ms {
		ms[i] = models.Milestone{SequenceIndex: i + 1, DueDate: deal.ClosingDate, IsCompleted: i > 0}
	}
	assert.Equal(t, 99, ComputeTimelineMetrics(deal, ms, day(2024, 1, 10)).ProgressPercentage)

	ms[0].IsCompleted = true
	assert.Equal(t, 100, ComputeTimelineMetrics(deal, ms, day(2024, 1, 10)).ProgressPercentage)
}

func TestIsOverdueIsStrict(t *testing.T) {
	m := models.Milestone{DueDate: day(2024, 1, 15)}
	assert.False(t, m.IsOverdue(day(2024, 1, 15)))
	assert.True(t, m.IsOverdue(day(2024, 1, 15).Add(time.Second)))

	m.IsCompleted = true
	assert.False(t, m.IsOverdue(day(2024, 2, 1)))
}

func TestPortfolioHealth(t *testing.T) {
	cases := []struct {
		deals, overdue, atRisk int
		want                   models.PortfolioHealth
	}{
		{0, 0, 0, models.HealthExcellent},
		{10, 0, 1, models.HealthExcellent},
		{10, 1, 0, models.HealthGood},
		{10, 0, 2, models.HealthGood},
		{10, 2, 0, models.HealthFair},
		{10, 0, 4, models.HealthFair},
		{10, 4, 0, models.HealthPoor},
		{10, 0, 6, models.HealthPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, portfolioHealth(tc.deals, tc.overdue, tc.atRisk), "%+v", tc)
	}
}
