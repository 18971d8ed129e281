package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/models/reports"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/gin-gonic/gin"
)

func AnalyticsSalesHandler(c *gin.Context) {
	var filter reports.SalesByMonthFilter

	if raw := c.Query("agentId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, "analytics_handler.go", "AnalyticsSalesHandler",
				utils.NewValidationError("agentId", "must be an integer"))
			return
		}
		filter.AgentId = &id
	}
	filter.Destination = utils.NilIfEmpty(c.Query("destination"))
	if start, end, ok := dateRangeQuery(c, "AnalyticsSalesHandler"); ok {
		filter.StartDate = start
		filter.EndDate = end
	} else {
		return
	}

	points, err := reports.GetSalesByMonthReport(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, "analytics_handler.go", "AnalyticsSalesHandler", err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func AnalyticsAgentsHandler(c *gin.Context) {
	metric := c.DefaultQuery("metric", "sales")

	rows, err := reports.GetSalesByAgentReport(c.Request.Context(), metric)
	if err != nil {
		abortWithError(c, "analytics_handler.go", "AnalyticsAgentsHandler", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func AnalyticsDestinationsHandler(c *gin.Context) {
	metric := c.DefaultQuery("metric", "sales")
	limit := config.SearchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	rows, err := reports.GetSalesByDestinationReport(c.Request.Context(), metric, limit)
	if err != nil {
		abortWithError(c, "analytics_handler.go", "AnalyticsDestinationsHandler", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// dateRangeQuery parses optional startDate/endDate query params. Both must be
// present for a range to apply; endDate is pushed to the following midnight so
// the range is inclusive of its last day.
func dateRangeQuery(c *gin.Context, funcName string) (*time.Time, *time.Time, bool) {
	rawStart := c.Query("startDate")
	rawEnd := c.Query("endDate")
	if rawStart == "" || rawEnd == "" {
		return nil, nil, true
	}

	start, err := time.Parse("2006-01-02", rawStart)
	if err != nil {
		abortWithError(c, "analytics_handler.go", funcName,
			utils.NewValidationError("startDate", "must be formatted as YYYY-MM-DD"))
		return nil, nil, false
	}
	end, err := time.Parse("2006-01-02", rawEnd)
	if err != nil {
		abortWithError(c, "analytics_handler.go", funcName,
			utils.NewValidationError("endDate", "must be formatted as YYYY-MM-DD"))
		return nil, nil, false
	}
	end = end.AddDate(0, 0, 1)
	return &start, &end, true
}
