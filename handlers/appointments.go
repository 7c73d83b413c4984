package handlers

import (
	"net/http"

	"agendly/models"
	"agendly/services/booking"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the booking state machine over HTTP.
type AppointmentHandler struct {
	Svc booking.AppointmentService
}

func NewAppointmentHandler(svc booking.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.Create(actorFrom(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// Complete handles POST /api/appointments/:id/complete.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	appt, err := h.Svc.Complete(actorFrom(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel handles POST /api/appointments/:id/cancel.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appt, err := h.Svc.Cancel(actorFrom(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Reschedule handles POST /api/appointments/:id/reschedule.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req models.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.Reschedule(actorFrom(c), c.Param("id"), req.Start)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ProviderHistory handles GET /api/providers/:id/appointments.
func (h *AppointmentHandler) ProviderHistory(c *gin.Context) {
	providerID := c.Param("id")
	actor := actorFrom(c)
	if actor.Role != booking.RoleProvider || actor.ID != providerID {
		utils.JSONError(c, http.StatusForbidden, booking.CodeForbidden, "callers can only view their own appointment history")
		return
	}

	page, limit := pageParams(c)
	appts, err := h.Svc.ProviderHistory(providerID, page, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "page": page, "limit": limit})
}

// MyAppointments handles GET /api/me/appointments for consumers.
func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != booking.RoleConsumer {
		utils.JSONError(c, http.StatusForbidden, booking.CodeForbidden, "consumer token required")
		return
	}

	page, limit := pageParams(c)
	appts, err := h.Svc.ConsumerHistory(actor.ID, page, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "page": page, "limit": limit})
}
