package reports

import (
	"context"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/shopspring/decimal"
)

// PeriodTotals is the shared aggregate every dashboard figure is built from.
type PeriodTotals struct {
	Sales    decimal.Decimal `json:"sales"`
	Profit   decimal.Decimal `json:"profit"`
	Bookings int64           `json:"bookings"`
}

func GetBookingTotalsBetween(ctx context.Context, start, end time.Time) (*PeriodTotals, error) {
	sql := `
SELECT
    COALESCE(SUM(ticket_amount), 0) AS sales,
    COALESCE(SUM(profit_amount), 0) AS profit,
    COUNT(id) AS bookings
FROM
    bookings
WHERE
    created_at >= @start AND created_at < @end;
`

	var totals PeriodTotals
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"start": start,
		"end":   end,
	}).Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// MetricValue picks one figure out of the aggregate.
func (t PeriodTotals) MetricValue(metric string) decimal.Decimal {
	switch metric {
	case "profit":
		return t.Profit
	case "bookings":
		return decimal.NewFromInt(t.Bookings)
	default:
		return t.Sales
	}
}

// percentChange follows the dashboard convention: a zero previous period
// reads as +100%.
func percentChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.NewFromInt(100)
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
}
