package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealdesk/internal/models"
)

// Participants godoc
// @Summary      List deal participants, including deactivated rows
// @Tags         Participants
// @Produce      json
// @Param        id   path   string  true  "Deal ID"
// @Success      200  {array}  models.Participant
// @Security     BearerAuth
// @Router       /deals/{id}/participants [get]
func (h *DealHandler) Participants(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	ps, err := h.Service.ListParticipants(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

type addParticipantRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// AddParticipant godoc
// @Summary      Add a participant to a deal
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Deal ID"
// @Param        body  body      addParticipantRequest  true  "User and role"
// @Success      201   {object}  models.Participant
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/participants [post]
func (h *DealHandler) AddParticipant(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "malformed")
		return
	}
	p, err := h.Service.AddParticipant(c.Request.Context(), actor, c.Param("id"), req.UserID, models.ParticipantRole(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// RemoveParticipant godoc
// @Summary      Deactivate a participant
// @Description  The last active buyer or seller cannot be removed.
// @Tags         Participants
// @Produce      json
// @Param        id   path      string  true  "Deal ID"
// @Param        pid  path      string  true  "Participant ID"
// @Success      200  {object}  models.Participant
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /deals/{id}/participants/{pid} [delete]
func (h *DealHandler) RemoveParticipant(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	p, err := h.Service.RemoveParticipant(c.Request.Context(), actor, c.Param("id"), c.Param("pid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
