package routes

import (
	"net/http"
	"time"

	"agendly/handlers"
	"agendly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the HTTP handlers wired at startup.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Schedule     *handlers.ScheduleHandler
	Appointments *handlers.AppointmentHandler
	Credits      *handlers.CreditsHandler
}

// RegisterProviderRoutes registers schedule management and provider-facing
// read endpoints under /api/providers.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id/slots", hb.Availability.GetAvailableSlots)
		api.GET("/:id/appointments", hb.Appointments.ProviderHistory)
		api.PUT("/:id/hours", hb.Schedule.ReplaceWeeklyHours)
		api.POST("/:id/blocks", hb.Schedule.CreateTimeBlock)
		api.DELETE("/:id/blocks/:blockId", hb.Schedule.DeleteTimeBlock)
	}
}

// RegisterAppointmentRoutes registers the booking state machine endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Appointments.Create)
		api.POST("/:id/complete", hb.Appointments.Complete)
		api.POST("/:id/cancel", hb.Appointments.Cancel)
		api.POST("/:id/reschedule", hb.Appointments.Reschedule)
	}
}

// RegisterConsumerRoutes registers the authenticated consumer's own views.
func RegisterConsumerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/me")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/appointments", hb.Appointments.MyAppointments)
		api.GET("/credits", hb.Credits.MyCredits)
	}
}

// RegisterAdminRoutes registers admin-only operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/credits")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Credits.Grant)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Agendly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterProviderRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterConsumerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
