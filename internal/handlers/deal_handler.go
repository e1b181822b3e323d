package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dealdesk/internal/models"
	"dealdesk/internal/pdf"
	"dealdesk/internal/services"
)

type DealHandler struct {
	Service *services.DealService
	Reports pdf.Generator
}

func NewDealHandler(service *services.DealService, reports pdf.Generator) *DealHandler {
	return &DealHandler{Service: service, Reports: reports}
}

type createDealRequest struct {
	BuyerID      string          `json:"buyer_id"`
	SellerID     string          `json:"seller_id" binding:"required"`
	ListingID    string          `json:"listing_id" binding:"required"`
	InitialOffer decimal.Decimal `json:"initial_offer"`
	OfferDate    string          `json:"offer_date" binding:"required"`
	ClosingDate  string          `json:"closing_date" binding:"required"`
	Priority     string          `json:"priority"`
	AssignedTo   *string         `json:"assigned_to"`
}

// Create godoc
// @Summary      Create a deal
// @Description  Creates a deal in initial_interest with buyer/seller participants and seeded milestones. The caller becomes the buyer unless buyer_id is given.
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        deal  body      createDealRequest  true  "New deal"
// @Success      201   {object}  models.Deal
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req createDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	offerDate, ok := parseDate(req.OfferDate)
	if !ok {
		badRequest(c, "offer_date", "not_a_date")
		return
	}
	closingDate, ok := parseDate(req.ClosingDate)
	if !ok {
		badRequest(c, "closing_date", "not_a_date")
		return
	}
	if req.BuyerID == "" {
		req.BuyerID = actor.ID
	}

	deal, err := h.Service.CreateDeal(c.Request.Context(), actor, services.CreateDealInput{
		BuyerID:      req.BuyerID,
		SellerID:     req.SellerID,
		ListingID:    req.ListingID,
		InitialOffer: req.InitialOffer,
		OfferDate:    offerDate,
		ClosingDate:  closingDate,
		Priority:     models.DealPriority(req.Priority),
		AssignedTo:   req.AssignedTo,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deal)
}

// List godoc
// @Summary      List my deals
// @Tags         Deals
// @Produce      json
// @Param        active  query  bool  false  "Only non-terminal deals"
// @Success      200  {array}  models.Deal
// @Security     BearerAuth
// @Router       /deals [get]
func (h *DealHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	deals, err := h.Service.ListMyDeals(c.Request.Context(), actor, c.Query("active") == "true")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

// Summary godoc
// @Summary      Timeline health across my active deals
// @Tags         Deals
// @Produce      json
// @Success      200  {object}  models.PortfolioSummary
// @Security     BearerAuth
// @Router       /deals/summary [get]
func (h *DealHandler) Summary(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	summary, err := h.Service.PortfolioSummary(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetByID godoc
// @Summary      Deal with milestones and timeline metrics
// @Tags         Deals
// @Produce      json
// @Param        id   path      string  true  "Deal ID"
// @Success      200  {object}  models.DealView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id} [get]
func (h *DealHandler) GetByID(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	view, err := h.Service.GetDealWithMetrics(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateDealStatusRequest struct {
	To              string `json:"to"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// UpdateStatus godoc
// @Summary      Transition deal status
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Deal ID"
// @Param        body  body      updateDealStatusRequest  true  "Target status"
// @Success      200   {object}  models.Deal
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/status [post]
func (h *DealHandler) UpdateStatus(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req updateDealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	deal, err := h.Service.TransitionStatus(c.Request.Context(), actor, c.Param("id"), models.DealStatus(req.To), req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

type updateOfferRequest struct {
	CurrentOffer    *decimal.Decimal `json:"current_offer" binding:"required"`
	ExpectedVersion *int64           `json:"expected_version"`
}

// UpdateOffer godoc
// @Summary      Record a new current offer
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Deal ID"
// @Param        body  body      updateOfferRequest  true  "Offer amount"
// @Success      200   {object}  models.Deal
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/offer [put]
func (h *DealHandler) UpdateOffer(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req updateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "current_offer", "required")
		return
	}
	deal, err := h.Service.UpdateOffer(c.Request.Context(), actor, c.Param("id"), *req.CurrentOffer, req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

type updatePriorityRequest struct {
	Priority        string `json:"priority"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// UpdatePriority godoc
// @Summary      Change deal priority
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Deal ID"
// @Param        body  body      updatePriorityRequest  true  "low, medium, high or urgent"
// @Success      200   {object}  models.Deal
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/priority [put]
func (h *DealHandler) UpdatePriority(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req updatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	deal, err := h.Service.UpdatePriority(c.Request.Context(), actor, c.Param("id"), models.DealPriority(req.Priority), req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

type rescheduleRequest struct {
	OfferDate       string `json:"offer_date" binding:"required"`
	ClosingDate     string `json:"closing_date" binding:"required"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// Reschedule godoc
// @Summary      Change offer/closing dates and regenerate milestones
// @Description  Refused with milestone_regeneration_blocked once any milestone is completed.
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Deal ID"
// @Param        body  body      rescheduleRequest  true  "New dates"
// @Success      200   {object}  models.DealView
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/schedule [put]
func (h *DealHandler) Reschedule(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	offerDate, ok := parseDate(req.OfferDate)
	if !ok {
		badRequest(c, "offer_date", "not_a_date")
		return
	}
	closingDate, ok := parseDate(req.ClosingDate)
	if !ok {
		badRequest(c, "closing_date", "not_a_date")
		return
	}
	view, err := h.Service.RescheduleDeal(c.Request.Context(), actor, c.Param("id"), offerDate, closingDate, req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type assignRequest struct {
	AssignedTo      *string `json:"assigned_to"`
	ExpectedVersion *int64  `json:"expected_version"`
}

// Assign godoc
// @Summary      Set or clear the assigned intermediary
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Deal ID"
// @Param        body  body      assignRequest  true  "Intermediary user, null clears"
// @Success      200   {object}  models.Deal
// @Security     BearerAuth
// @Router       /deals/{id}/assignee [put]
func (h *DealHandler) Assign(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	deal, err := h.Service.AssignIntermediary(c.Request.Context(), actor, c.Param("id"), req.AssignedTo, req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

// Activities godoc
// @Summary      Deal activity log, oldest first
// @Tags         Deals
// @Produce      json
// @Param        id   path     string  true  "Deal ID"
// @Success      200  {array}  models.Activity
// @Security     BearerAuth
// @Router       /deals/{id}/activities [get]
func (h *DealHandler) Activities(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	acts, err := h.Service.ListActivities(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acts)
}

// TimelinePDF godoc
// @Summary      Timeline report as PDF
// @Tags         Deals
// @Produce      application/pdf
// @Param        id   path  string  true  "Deal ID"
// @Success      200
// @Security     BearerAuth
// @Router       /deals/{id}/timeline.pdf [get]
func (h *DealHandler) TimelinePDF(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	view, err := h.Service.GetDealWithMetrics(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.Reports.TimelineReport(&buf, *view, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render_failed"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s-timeline.pdf"`, view.Deal.DealNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
