package services

import "dealdesk/internal/models"

// nextStage maps each open main-sequence stage to the only stage it may advance to.
var nextStage = func() map[models.DealStatus]models.DealStatus {
	m := make(map[models.DealStatus]models.DealStatus, len(models.MainSequence)-1)
	for i := 0; i+1 < len(models.MainSequence); i++ {
		m[models.MainSequence[i]] = models.MainSequence[i+1]
	}
	return m
}()

// CanTransition reports whether a deal in from may move to to.
func CanTransition(from, to models.DealStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case models.StatusCancelled, models.StatusExpired:
		return true
	case models.StatusInitialInterest, models.StatusNDASigned, models.StatusDueDiligence,
		models.StatusNegotiation, models.StatusFinancing, models.StatusLegalReview,
		models.StatusClosing, models.StatusCompleted:
		next, ok := nextStage[from]
		return ok && next == to
	}
	return false
}

// AllowedTransitions lists the targets reachable from s, forward step first.
func AllowedTransitions(s models.DealStatus) []models.DealStatus {
	if s.IsTerminal() {
		return nil
	}
	var out []models.DealStatus
	if next, ok := nextStage[s]; ok {
		out = append(out, next)
	}
	return append(out, models.StatusCancelled, models.StatusExpired)
}
