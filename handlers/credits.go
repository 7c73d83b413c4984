package handlers

import (
	"net/http"

	"agendly/models"
	"agendly/services/booking"
	"agendly/services/credits"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// CreditsHandler exposes prepaid package balances.
type CreditsHandler struct {
	Ledger credits.LedgerService
}

func NewCreditsHandler(ledger credits.LedgerService) *CreditsHandler {
	return &CreditsHandler{Ledger: ledger}
}

// Grant handles POST /api/credits. Reserved for the admin role: balances
// are normally created when an upstream package purchase settles.
func (h *CreditsHandler) Grant(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != "admin" {
		utils.JSONError(c, http.StatusForbidden, booking.CodeForbidden, "admin token required")
		return
	}

	var req models.GrantPackageBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	balance, err := h.Ledger.Grant(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, balance)
}

// MyCredits handles GET /api/me/credits for consumers.
func (h *CreditsHandler) MyCredits(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != booking.RoleConsumer {
		utils.JSONError(c, http.StatusForbidden, booking.CodeForbidden, "consumer token required")
		return
	}

	balances, err := h.Ledger.ListByConsumer(actor.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}
