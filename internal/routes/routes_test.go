package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/handlers"
	"dealdesk/internal/middleware"
	"dealdesk/internal/models"
	"dealdesk/internal/pdf"
	"dealdesk/internal/repositories"
	"dealdesk/internal/services"
)

var secret = []byte("routes-test-secret")

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	gin.SetMode(gin.TestMode)
	deps := services.Deps{Store: repositories.NewMemoryStore()}
	r := SetupRoutes(gin.New(), secret,
		handlers.NewDealHandler(services.NewDealService(deps), pdf.NewDocumentGenerator("")),
		handlers.NewMilestoneHandler(services.NewMilestoneService(deps)),
	)
	return &api{t: t, router: r}
}

func (a *api) token(userID string, admin bool) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID:           userID,
		Admin:            admin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(user, false))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *api) createDeal() models.Deal {
	w := a.do(http.MethodPost, "/deals", "buyer-1", gin.H{
		"seller_id":     "seller-1",
		"listing_id":    "listing-42",
		"initial_offer": 1250000,
		"offer_date":    "2024-01-01",
		"closing_date":  "2024-02-04",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Deal](a.t, w)
}

func TestPublicEndpoints(t *testing.T) {
	a := newAPI(t)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/deals", "", nil).Code)
}

func TestDealLifecycleOverHTTP(t *testing.T) {
	a := newAPI(t)
	deal := a.createDeal()
	assert.Equal(t, "buyer-1", deal.BuyerID)
	base := "/deals/" + deal.ID

	w := a.do(http.MethodGet, base, "seller-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.DealView](t, w)
	require.Len(t, view.Milestones, 7)
	assert.Equal(t, []models.DealStatus{"nda_signed", "cancelled", "expired"}, view.AllowedTransitions)

	w = a.do(http.MethodPost, base+"/status", "buyer-1", gin.H{"to": "due_diligence"})
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "invalid_transition", body["error"])
	assert.Equal(t, "initial_interest", body["from"])

	w = a.do(http.MethodPost, base+"/status", "buyer-1", gin.H{"to": "nda_signed", "expected_version": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPut, base+"/offer", "seller-1", gin.H{"current_offer": "1100000", "expected_version": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	body = decode[map[string]any](t, w)
	assert.Equal(t, "concurrent_modification", body["error"])
	assert.Equal(t, true, body["retryable"])

	w = a.do(http.MethodGet, base, "eve", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	for _, req := range []struct{ method, path string }{
		{http.MethodPut, base + "/priority"},
		{http.MethodPost, base + "/status"},
		{http.MethodPost, base + "/milestones/" + view.Milestones[0].ID + "/notes"},
	} {
		w = a.do(req.method, req.path, "eve", gin.H{})
		assert.Equal(t, http.StatusForbidden, w.Code, req.path)
	}

	w = a.do(http.MethodGet, "/deals/missing", "buyer-1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "non-participants learn nothing about existence")

	var nda models.Milestone
	for _, m := range view.Milestones {
		if m.Key == "nda_execution" {
			nda = m
		}
	}
	w = a.do(http.MethodPost, fmt.Sprintf("%s/milestones/%s/complete", base, nda.ID), "seller-1", gin.H{"notes": "signed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[models.Milestone](t, w).IsCompleted)

	w = a.do(http.MethodPut, base+"/schedule", "buyer-1", gin.H{"offer_date": "2024-01-01", "closing_date": "2024-03-09"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "milestone_regeneration_blocked", decode[map[string]any](t, w)["error"])

	w = a.do(http.MethodGet, "/deals?active=true", "buyer-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Deal](t, w), 1)

	w = a.do(http.MethodGet, base+"/activities", "buyer-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Activity](t, w), 3)
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/deals", "buyer-1", gin.H{
		"seller_id": "seller-1", "listing_id": "l", "offer_date": "2024-02-04", "closing_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "validation_failed", body["error"])
	assert.Equal(t, "closing_date", body["field"])

	w = a.do(http.MethodPost, "/deals", "buyer-1", gin.H{
		"seller_id": "seller-1", "listing_id": "l", "offer_date": "tomorrow", "closing_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offer_date", decode[map[string]any](t, w)["field"])
}

func TestParticipantsAndReportOverHTTP(t *testing.T) {
	a := newAPI(t)
	deal := a.createDeal()
	base := "/deals/" + deal.ID

	w := a.do(http.MethodPost, base+"/participants", "seller-1", gin.H{"user_id": "counsel-1", "role": "attorney"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	added := decode[models.Participant](t, w)

	w = a.do(http.MethodPut, base+"/priority", "counsel-1", gin.H{"priority": "high"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient_role", decode[map[string]any](t, w)["reason"])

	w = a.do(http.MethodGet, base+"/timeline.pdf", "counsel-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = a.do(http.MethodDelete, base+"/participants/"+added.ID, "buyer-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.Participant](t, w).IsActive)

	w = a.do(http.MethodGet, base+"/participants", "buyer-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Participant](t, w), 3)

	w = a.do(http.MethodGet, "/deals/summary", "buyer-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["total_active_deals"])
}
