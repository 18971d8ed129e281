package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
)

type DashboardStat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

const statsCacheKey = "dashboard:stats"
const dashboardCacheTTL = time.Minute

// GetDashboardStats compares the current month against the previous one.
// Results are cached briefly; the figures move slowly enough that a minute of
// staleness is fine.
func GetDashboardStats(ctx context.Context) ([]DashboardStat, error) {
	var cached []DashboardStat
	if ok, err := config.GetRedisObject(statsCacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	currentStart, currentEnd := utils.GetThisMonthRange()
	previousStart, previousEnd := utils.GetPreviousMonthRange()

	current, err := GetBookingTotalsBetween(ctx, currentStart, currentEnd)
	if err != nil {
		return nil, err
	}
	previous, err := GetBookingTotalsBetween(ctx, previousStart, previousEnd)
	if err != nil {
		return nil, err
	}

	salesChange := percentChange(previous.Sales, current.Sales)
	profitChange := percentChange(previous.Profit, current.Profit)
	bookingsChange := percentChange(
		decimal.NewFromInt(previous.Bookings), decimal.NewFromInt(current.Bookings))

	// Conversion assumes 4 inquiries per booking; the previous rate is a fixed
	// placeholder carried over from the dashboard design.
	conversionRate := decimal.Zero
	if current.Bookings > 0 {
		conversionRate = decimal.NewFromInt(25)
	}
	previousConversionRate := decimal.NewFromInt(20)
	conversionChange := percentChange(previousConversionRate, conversionRate)

	stats := []DashboardStat{
		{
			Title:  "Total Sales",
			Value:  "$" + current.Sales.StringFixed(2),
			Change: salesChange.StringFixed(1) + "%",
		},
		{
			Title:  "Total Profit",
			Value:  "$" + current.Profit.StringFixed(2),
			Change: profitChange.StringFixed(1) + "%",
		},
		{
			Title:  "Bookings",
			Value:  fmt.Sprint(current.Bookings),
			Change: bookingsChange.StringFixed(1) + "%",
		},
		{
			Title:  "Conversion",
			Value:  conversionRate.StringFixed(0) + "%",
			Change: conversionChange.StringFixed(1) + "%",
		},
	}

	if err := config.SetRedisObject(statsCacheKey, stats, dashboardCacheTTL); err != nil {
		config.LogError(config.GetLogger(), "dashboardStatsReport.go", "GetDashboardStats", "cache write", nil, err)
	}
	return stats, nil
}

// InvalidateDashboardStats drops the cached stat cards so the next dashboard
// read reflects a booking mutation immediately instead of after the TTL.
func InvalidateDashboardStats() {
	if err := config.RemoveRedisKey(statsCacheKey); err != nil {
		config.LogError(config.GetLogger(), "dashboardStatsReport.go", "InvalidateDashboardStats", "cache drop", nil, err)
	}
}
