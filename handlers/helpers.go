package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"agendly/middleware"
	"agendly/services/booking"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// actorFrom reads the authenticated caller placed on the context by the
// auth middleware.
func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{
		ID:   c.GetString(middleware.ActorIDKey),
		Role: c.GetString(middleware.ActorRoleKey),
	}
}

// pageParams parses ?page= and ?limit= with sane defaults.
func pageParams(c *gin.Context) (int64, int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

var bookingErrorStatus = map[string]int{
	booking.CodeServiceNotFound:      http.StatusNotFound,
	booking.CodeCatalogUnavailable:   http.StatusServiceUnavailable,
	booking.CodeSlotUnavailable:      http.StatusConflict,
	booking.CodeNoCreditsAvailable:   http.StatusConflict,
	booking.CodeForbidden:            http.StatusForbidden,
	booking.CodeNotFound:             http.StatusNotFound,
	booking.CodeInvalidTimeRange:     http.StatusBadRequest,
	booking.CodeInvalidTransition:    http.StatusConflict,
	booking.CodeInvalidPaymentMethod: http.StatusBadRequest,
}

// respondDomainError translates classified domain errors into their HTTP
// status while keeping the stable code visible to the client.
func respondDomainError(c *gin.Context, err error) {
	if code := booking.CodeOf(err); code != "" {
		status := bookingErrorStatus[code]
		if status == 0 {
			status = http.StatusInternalServerError
		}
		utils.JSONError(c, status, code, err.Error())
		return
	}
	switch {
	case errors.Is(err, scheduling.ErrInvalidTimeRange), errors.Is(err, scheduling.ErrInvalidDuration):
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidTimeRange, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.JSONError(c, http.StatusNotFound, booking.CodeNotFound, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
