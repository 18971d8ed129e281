package reports

import (
	"context"
	"time"

	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
)

type ComparisonStat struct {
	Title    string          `json:"title"`
	Current  string          `json:"current"`
	Previous string          `json:"previous"`
	Change   decimal.Decimal `json:"change"`
}

// GetComparisonStats renders today-vs-yesterday, this-week-vs-last-week and
// this-month-vs-last-month for the chosen metric (sales, profit or bookings).
func GetComparisonStats(ctx context.Context, metric string) ([]ComparisonStat, error) {
	now := time.Now()

	todayStart, todayEnd := utils.GetDayRange(now)
	yesterdayStart, yesterdayEnd := utils.GetDayRange(now.AddDate(0, 0, -1))

	thisWeekStart := utils.GetThisWeekStart()
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)

	thisMonthStart, thisMonthEnd := utils.GetThisMonthRange()
	lastMonthStart, lastMonthEnd := utils.GetPreviousMonthRange()

	periods := []struct {
		title                  string
		curStart, curEnd       time.Time
		prevStart, prevEnd     time.Time
	}{
		{"vs Yesterday", todayStart, todayEnd, yesterdayStart, yesterdayEnd},
		{"vs Last Week", thisWeekStart, todayEnd, lastWeekStart, thisWeekStart},
		{"vs Last Month", thisMonthStart, thisMonthEnd, lastMonthStart, lastMonthEnd},
	}

	metricName := "Sales"
	switch metric {
	case "profit":
		metricName = "Profit"
	case "bookings":
		metricName = "Bookings"
	}

	stats := make([]ComparisonStat, 0, len(periods))
	for _, p := range periods {
		current, err := GetBookingTotalsBetween(ctx, p.curStart, p.curEnd)
		if err != nil {
			return nil, err
		}
		previous, err := GetBookingTotalsBetween(ctx, p.prevStart, p.prevEnd)
		if err != nil {
			return nil, err
		}

		curValue := current.MetricValue(metric)
		prevValue := previous.MetricValue(metric)

		stats = append(stats, ComparisonStat{
			Title:    metricName + " " + p.title,
			Current:  formatMetric(curValue, metric),
			Previous: formatMetric(prevValue, metric),
			Change:   percentChange(prevValue, curValue),
		})
	}
	return stats, nil
}

func formatMetric(value decimal.Decimal, metric string) string {
	if metric == "bookings" {
		return value.StringFixed(0)
	}
	return "$" + value.StringFixed(2)
}
