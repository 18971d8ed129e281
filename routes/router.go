package routes

import (
	"net/http"

	"github.com/airbooker/bookings_backend/handlers"
	"github.com/airbooker/bookings_backend/middlewares"
	"github.com/gin-gonic/gin"
)

// Register mounts every API route under /api. Reads stay open so the
// dashboard can render before login; mutations and the reporting surface
// require a valid token.
func Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/login", handlers.LoginHandler)
	}

	credit := api.Group("/credit")
	{
		credit.GET("", handlers.GetCreditHandler)
		credit.POST("/check", handlers.CheckCreditHandler)
		credit.POST("", middlewares.RequireAuth(), handlers.UpdateCreditHandler)
		credit.PUT("/total", middlewares.RequireAuth(), handlers.UpdateCreditHandler)
		credit.PATCH("/used", middlewares.RequireAuth(), middlewares.RequireRole("admin"), handlers.SetCreditUsedHandler)
	}

	bookings := api.Group("/bookings")
	{
		bookings.GET("", handlers.ListBookingsHandler)
		bookings.GET("/ledger", handlers.BookingLedgerHandler)
		bookings.GET("/export", handlers.ExportBookingsCSVHandler)
		bookings.GET("/export/xlsx", handlers.ExportBookingsXLSXHandler)
		bookings.GET("/:id", handlers.GetBookingHandler)
		bookings.POST("", middlewares.RequireAuth(), handlers.CreateBookingHandler)
		bookings.PUT("/:id", middlewares.RequireAuth(), handlers.UpdateBookingHandler)
		bookings.DELETE("/:id", middlewares.RequireAuth(), handlers.DeleteBookingHandler)
		bookings.POST("/:id/payments", middlewares.RequireAuth(), handlers.AddBookingPaymentHandler)
	}

	agents := api.Group("/agents")
	{
		agents.GET("", handlers.ListAgentsHandler)
		agents.GET("/:id", handlers.GetAgentHandler)
		agents.POST("", middlewares.RequireAuth(), handlers.CreateAgentHandler)
		agents.PUT("/:id", middlewares.RequireAuth(), handlers.UpdateAgentHandler)
		agents.DELETE("/:id", middlewares.RequireAuth(), handlers.DeleteAgentHandler)
	}

	settings := api.Group("/settings", middlewares.RequireAuth())
	{
		settings.GET("", handlers.GetSettingsHandler)
		settings.PUT("", handlers.UpdateSettingsHandler)
	}

	dashboard := api.Group("/dashboard", middlewares.RequireAuth())
	{
		dashboard.GET("/stats", handlers.DashboardStatsHandler)
		dashboard.GET("/chart", handlers.DashboardChartHandler)
		dashboard.GET("/comparison", handlers.DashboardComparisonHandler)
		dashboard.GET("/recent-bookings", handlers.RecentBookingsHandler)
	}

	analytics := api.Group("/analytics", middlewares.RequireAuth())
	{
		analytics.GET("/sales", handlers.AnalyticsSalesHandler)
		analytics.GET("/agents", handlers.AnalyticsAgentsHandler)
		analytics.GET("/destinations", handlers.AnalyticsDestinationsHandler)
	}
}
