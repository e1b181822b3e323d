package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealdesk/internal/services"
)

type MilestoneHandler struct {
	Service *services.MilestoneService
}

func NewMilestoneHandler(service *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{Service: service}
}

type completeMilestoneRequest struct {
	Notes           string `json:"notes"`
	Override        bool   `json:"override"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// Complete godoc
// @Summary      Complete a milestone
// @Description  Idempotent. Rejected while an earlier critical milestone is open unless override is set.
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true   "Deal ID"
// @Param        mid   path      string                    true   "Milestone ID"
// @Param        body  body      completeMilestoneRequest  false  "Notes and override"
// @Success      200   {object}  models.Milestone
// @Security     BearerAuth
// @Router       /deals/{id}/milestones/{mid}/complete [post]
func (h *MilestoneHandler) Complete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req completeMilestoneRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "malformed")
			return
		}
	}
	m, err := h.Service.CompleteMilestone(c.Request.Context(), actor, c.Param("id"), c.Param("mid"), services.CompleteInput{
		Notes:           req.Notes,
		Override:        req.Override,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type versionRequest struct {
	ExpectedVersion *int64 `json:"expected_version"`
}

// Reopen godoc
// @Summary      Clear a milestone completion
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Param        id    path      string          true   "Deal ID"
// @Param        mid   path      string          true   "Milestone ID"
// @Param        body  body      versionRequest  false  "Expected version"
// @Success      200   {object}  models.Milestone
// @Security     BearerAuth
// @Router       /deals/{id}/milestones/{mid}/reopen [post]
func (h *MilestoneHandler) Reopen(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req versionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "body", "malformed")
			return
		}
	}
	m, err := h.Service.UncompleteMilestone(c.Request.Context(), actor, c.Param("id"), c.Param("mid"), req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type annotateRequest struct {
	Notes           string `json:"notes"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// Annotate godoc
// @Summary      Append notes to a milestone
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Deal ID"
// @Param        mid   path      string           true  "Milestone ID"
// @Param        body  body      annotateRequest  true  "Notes"
// @Success      200   {object}  models.Milestone
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/milestones/{mid}/notes [post]
func (h *MilestoneHandler) Annotate(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req annotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	m, err := h.Service.AnnotateMilestone(c.Request.Context(), actor, c.Param("id"), c.Param("mid"), req.Notes, req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type dueDateRequest struct {
	DueDate         string `json:"due_date" binding:"required"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// AdjustDueDate godoc
// @Summary      Move an open milestone's due date
// @Description  The date must stay within the deal dates and in sequence with its neighbours.
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Deal ID"
// @Param        mid   path      string          true  "Milestone ID"
// @Param        body  body      dueDateRequest  true  "New due date (YYYY-MM-DD)"
// @Success      200   {object}  models.Milestone
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/milestones/{mid}/due-date [put]
func (h *MilestoneHandler) AdjustDueDate(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "due_date", "required")
		return
	}
	due, ok := parseDate(req.DueDate)
	if !ok {
		badRequest(c, "due_date", "not_a_date")
		return
	}
	m, err := h.Service.AdjustDueDate(c.Request.Context(), actor, c.Param("id"), c.Param("mid"), due, req.ExpectedVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
