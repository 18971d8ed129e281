package handlers

import (
	"net/http"

	"github.com/airbooker/bookings_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func DashboardStatsHandler(c *gin.Context) {
	stats, err := reports.GetDashboardStats(c.Request.Context())
	if err != nil {
		abortWithError(c, "dashboard_handler.go", "DashboardStatsHandler", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func DashboardChartHandler(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")

	points, err := reports.GetBookingChart(c.Request.Context(), period)
	if err != nil {
		abortWithError(c, "dashboard_handler.go", "DashboardChartHandler", err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func DashboardComparisonHandler(c *gin.Context) {
	metric := c.DefaultQuery("metric", "sales")

	stats, err := reports.GetComparisonStats(c.Request.Context(), metric)
	if err != nil {
		abortWithError(c, "dashboard_handler.go", "DashboardComparisonHandler", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func RecentBookingsHandler(c *gin.Context) {
	recent, err := reports.GetRecentBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, "dashboard_handler.go", "RecentBookingsHandler", err)
		return
	}
	c.JSON(http.StatusOK, recent)
}
