package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const availabilityCacheTTL = 30 * time.Second

// AvailabilityHandler serves the slot-computation endpoint used by booking
// front-ends.
type AvailabilityHandler struct {
	Engine scheduling.SchedulingEngine
	Cache  *redis.Client // optional
}

func NewAvailabilityHandler(engine scheduling.SchedulingEngine, cache *redis.Client) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Cache: cache}
}

// GetAvailableSlots handles GET /api/providers/:id/slots?from=&to=&duration=.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	providerID := c.Param("id")

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid 'from' date", "expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid 'to' date", "expected YYYY-MM-DD")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid 'duration'", "expected minutes as an integer")
		return
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s:%d", providerID, from.Format("2006-01-02"), to.Format("2006-01-02"), duration)
	if h.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		data, err := h.Cache.Get(ctx, cacheKey).Result()
		cancel()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(data))
			return
		}
	}

	slots, err := h.Engine.GetAvailableSlots(providerID, from, to, duration)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	body, err := json.Marshal(gin.H{"provider_id": providerID, "slots": slots})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to encode slots", err.Error())
		return
	}

	if h.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := h.Cache.Set(ctx, cacheKey, body, availabilityCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache availability", zap.String("key", cacheKey), zap.Error(err))
		}
		cancel()
	}

	c.Data(http.StatusOK, "application/json", body)
}
