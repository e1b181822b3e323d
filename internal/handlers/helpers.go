package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dealdesk/internal/authz"
	"dealdesk/internal/middleware"
	"dealdesk/internal/services"
)

// actorOrAbort returns the authenticated actor or answers 401.
func actorOrAbort(c *gin.Context) (authz.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
	}
	return actor, ok
}

func badRequest(c *gin.Context, field, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": field, "reason": reason})
}

// writeError maps service errors onto HTTP statuses. Bodies carry codes only.
func writeError(c *gin.Context, err error) {
	code := services.ErrorCode(err)
	body := gin.H{"error": code}

	var (
		validation *services.ValidationError
		transition *services.InvalidTransitionError
		unauth     *services.UnauthorizedParticipantError
	)
	switch {
	case errors.As(err, &validation):
		body["field"], body["reason"] = validation.Field, validation.Reason
	case errors.As(err, &transition):
		body["from"], body["to"] = transition.From, transition.To
	case errors.As(err, &unauth):
		body["reason"] = unauth.Reason
	}
	if services.IsRetryable(err) {
		body["retryable"] = true
	}
	c.JSON(statusFor(code), body)
}

func statusFor(code string) int {
	switch code {
	case "validation_failed":
		return http.StatusBadRequest
	case "unauthorized_participant":
		return http.StatusForbidden
	case "not_found":
		return http.StatusNotFound
	case "invalid_transition", "concurrent_modification", "milestone_regeneration_blocked":
		return http.StatusConflict
	case "store_unavailable":
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// parseDate accepts YYYY-MM-DD.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	return t, err == nil
}
