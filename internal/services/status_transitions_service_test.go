package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealdesk/internal/models"
)

var allStatuses = []models.DealStatus{
	models.StatusInitialInterest, models.StatusNDASigned, models.StatusDueDiligence, models.StatusNegotiation,
	models.StatusFinancing, models.StatusLegalReview, models.StatusClosing,
	models.StatusCompleted, models.StatusCancelled, models.StatusExpired,
}

func TestCanTransitionForwardOnly(t *testing.T) {
	assert.False(t, CanTransition(models.StatusInitialInterest, models.StatusDueDiligence))
	assert.True(t, CanTransition(models.StatusInitialInterest, models.StatusNDASigned))
	assert.True(t, CanTransition(models.StatusClosing, models.StatusCompleted))
	assert.False(t, CanTransition(models.StatusNegotiation, models.StatusDueDiligence), "no backwards edge")
	assert.False(t, CanTransition(models.StatusNegotiation, models.StatusNegotiation), "no self edge")
}

func TestCanTransitionEveryEdge(t *testing.T) {
	allowed := map[[2]models.DealStatus]bool{}
	for i := 0; i+1 < len(models.MainSequence); i++ {
		allowed[[2]models.DealStatus{models.MainSequence[i], models.MainSequence[i+1]}] = true
	}
	for _, from := range allStatuses {
		if from.IsTerminal() {
			continue
		}
		allowed[[2]models.DealStatus{from, models.StatusCancelled}] = true
		allowed[[2]models.DealStatus{from, models.StatusExpired}] = true
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]models.DealStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range []models.DealStatus{models.StatusCompleted, models.StatusCancelled, models.StatusExpired} {
		assert.Empty(t, AllowedTransitions(s), s)
	}
}

func TestAllowedTransitions(t *testing.T) {
	assert.Equal(t,
		[]models.DealStatus{models.StatusNDASigned, models.StatusCancelled, models.StatusExpired},
		AllowedTransitions(models.StatusInitialInterest))
	assert.Equal(t,
		[]models.DealStatus{models.StatusCompleted, models.StatusCancelled, models.StatusExpired},
		AllowedTransitions(models.StatusClosing))
}

func TestUnknownStatusIsRejected(t *testing.T) {
	assert.False(t, CanTransition(models.StatusInitialInterest, models.DealStatus("archived")))
	_, ok := models.ParseDealStatus("archived")
	assert.False(t, ok)
}
