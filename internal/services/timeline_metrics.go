package services

import (
	"math"
	"sort"
	"time"

	"dealdesk/internal/models"
)

const (
	upcomingWindowDays = 7
	onTrackTolerance   = 10
	atRiskTolerance    = 15
)

// ComputeTimelineMetrics derives the timeline figures of a deal. It reads
// nothing but its arguments and is safe on every request.
func ComputeTimelineMetrics(deal models.Deal, milestones []models.Milestone, now time.Time) models.TimelineMetrics {
	m := models.TimelineMetrics{
		TotalMilestones:   len(milestones),
		OverdueCritical:   []models.Milestone{},
		CriticalPath:      []models.Milestone{},
		UpcomingDeadlines: []models.Milestone{},
	}

	today := models.DateOnly(now)
	horizon := today.AddDate(0, 0, upcomingWindowDays)
	for _, ms := range milestones {
		if ms.IsCompleted {
			m.CompletedMilestones++
		}
		overdue := ms.IsOverdue(now)
		if overdue {
			m.OverdueMilestones++
			if ms.IsCritical {
				m.OverdueCritical = append(m.OverdueCritical, ms)
			}
		}
		if ms.IsCritical {
			m.CriticalPath = append(m.CriticalPath, ms)
		}
		if !ms.IsCompleted && !overdue && !ms.DueDate.After(horizon) {
			m.UpcomingDeadlines = append(m.UpcomingDeadlines, ms)
		}
	}
	byDue := func(s []models.Milestone) {
		sort.SliceStable(s, func(i, j int) bool {
			if s[i].DueDate.Equal(s[j].DueDate) {
				return s[i].SequenceIndex < s[j].SequenceIndex
			}
			return s[i].DueDate.Before(s[j].DueDate)
		})
	}
	byDue(m.OverdueCritical)
	byDue(m.CriticalPath)
	byDue(m.UpcomingDeadlines)

	m.ProgressPercentage = percent(m.CompletedMilestones, m.TotalMilestones)
	if m.ProgressPercentage == 100 && m.CompletedMilestones < m.TotalMilestones {
		m.ProgressPercentage = 99
	}

	m.RemainingDays = max(0, models.DaysBetween(now, deal.ClosingDate))
	m.TotalDays = max(0, models.DaysBetween(deal.OfferDate, deal.ClosingDate))
	m.ElapsedDays = max(0, models.DaysBetween(deal.OfferDate, now))
	if m.TotalDays > 0 {
		m.TimeProgressPercentage = min(100, percent(m.ElapsedDays, m.TotalDays))
	}

	m.OnTrack = m.ProgressPercentage >= m.TimeProgressPercentage-onTrackTolerance
	switch {
	case m.OverdueMilestones > 0:
		m.Status = models.TimelineDelayed
	case m.ProgressPercentage < m.TimeProgressPercentage-atRiskTolerance:
		m.Status = models.TimelineAtRisk
	default:
		m.Status = models.TimelineOnTrack
	}
	return m
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// portfolioHealth grades a portfolio by its overdue and at-risk ratios.
func portfolioHealth(deals, overdue, atRisk int) models.PortfolioHealth {
	if deals == 0 {
		return models.HealthExcellent
	}
	overdueRatio := float64(overdue) / float64(deals)
	riskRatio := float64(atRisk) / float64(deals)
	switch {
	case overdueRatio > 0.3 || riskRatio > 0.5:
		return models.HealthPoor
	case overdueRatio > 0.1 || riskRatio > 0.3:
		return models.HealthFair
	case overdueRatio > 0 || riskRatio > 0.1:
		return models.HealthGood
	}
	return models.HealthExcellent
}
