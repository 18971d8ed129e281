package reports

import (
	"context"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
)

type MonthlySalesPoint struct {
	Name     string          `json:"name"`
	Sales    decimal.Decimal `json:"sales"`
	Profit   decimal.Decimal `json:"profit"`
	Bookings int64           `json:"bookings"`
}

type SalesByMonthFilter struct {
	AgentId     *int
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// GetSalesByMonthReport aggregates bookings into a 12-month grid, optionally
// filtered by agent, destination and date range. Without a range it covers
// the current year. Months with no bookings come back zeroed.
func GetSalesByMonthReport(ctx context.Context, filter SalesByMonthFilter) ([]MonthlySalesPoint, error) {
	sqlT := `
SELECT
    MONTH(created_at) AS month,
    COALESCE(SUM(ticket_amount), 0) AS sales,
    COALESCE(SUM(profit_amount), 0) AS profit,
    COUNT(id) AS bookings
FROM
    bookings
WHERE
    created_at >= @fromDate AND created_at < @toDate
    {{- if .agentId }} AND agent_id = @agentId {{- end }}
    {{- if .destination }} AND destination = @destination {{- end }}
GROUP BY MONTH(created_at)
ORDER BY month;
`

	fromDate, toDate := utils.GetYearRange(time.Now().Year())
	if filter.StartDate != nil && filter.EndDate != nil {
		fromDate = *filter.StartDate
		toDate = *filter.EndDate
	}

	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{
		"agentId":     utils.DereferencePtr(filter.AgentId),
		"destination": utils.DereferencePtr(filter.Destination),
	})
	if err != nil {
		return nil, err
	}

	var records []struct {
		Month    int
		Sales    decimal.Decimal
		Profit   decimal.Decimal
		Bookings int64
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate":    fromDate,
		"toDate":      toDate,
		"agentId":     filter.AgentId,
		"destination": filter.Destination,
	}).Scan(&records).Error; err != nil {
		return nil, err
	}

	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	points := make([]MonthlySalesPoint, 12)
	for i, name := range months {
		points[i] = MonthlySalesPoint{Name: name, Sales: decimal.Zero, Profit: decimal.Zero}
	}
	for _, r := range records {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		points[r.Month-1].Sales = r.Sales
		points[r.Month-1].Profit = r.Profit
		points[r.Month-1].Bookings = r.Bookings
	}
	return points, nil
}
