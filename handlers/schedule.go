package handlers

import (
	"net/http"

	"agendly/models"
	"agendly/services/booking"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes a provider's weekly hours and time blocks.
type ScheduleHandler struct {
	Engine scheduling.SchedulingEngine
}

func NewScheduleHandler(engine scheduling.SchedulingEngine) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine}
}

// requireOwnProvider allows only the provider acting on their own schedule.
func requireOwnProvider(c *gin.Context) (string, bool) {
	providerID := c.Param("id")
	actor := actorFrom(c)
	if actor.Role != booking.RoleProvider || actor.ID != providerID {
		utils.JSONError(c, http.StatusForbidden, booking.CodeForbidden, "callers can only manage their own schedule")
		return "", false
	}
	return providerID, true
}

// ReplaceWeeklyHours handles PUT /api/providers/:id/hours.
func (h *ScheduleHandler) ReplaceWeeklyHours(c *gin.Context) {
	providerID, ok := requireOwnProvider(c)
	if !ok {
		return
	}

	var req models.ReplaceWeeklyHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Engine.ReplaceWeeklyHours(providerID, req.Hours); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider_id": providerID, "days": len(req.Hours)})
}

// CreateTimeBlock handles POST /api/providers/:id/blocks.
func (h *ScheduleHandler) CreateTimeBlock(c *gin.Context) {
	providerID, ok := requireOwnProvider(c)
	if !ok {
		return
	}

	var req models.CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	block, err := h.Engine.CreateTimeBlock(providerID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// DeleteTimeBlock handles DELETE /api/providers/:id/blocks/:blockId.
func (h *ScheduleHandler) DeleteTimeBlock(c *gin.Context) {
	providerID, ok := requireOwnProvider(c)
	if !ok {
		return
	}

	if err := h.Engine.DeleteTimeBlock(providerID, c.Param("blockId")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
