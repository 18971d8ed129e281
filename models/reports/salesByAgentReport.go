package reports

import (
	"context"

	"github.com/airbooker/bookings_backend/config"
	"github.com/shopspring/decimal"
)

type SalesByAgentResponse struct {
	AgentId   int             `json:"agent_id"`
	AgentName *string         `json:"agent_name,omitempty"`
	Bookings  int64           `json:"bookings"`
	Sales     decimal.Decimal `json:"sales"`
	Profit    decimal.Decimal `json:"profit"`
	Value     decimal.Decimal `json:"value"`
}

// GetSalesByAgentReport aggregates bookings per agent, strongest first by the
// chosen metric.
func GetSalesByAgentReport(ctx context.Context, metric string) ([]*SalesByAgentResponse, error) {
	sql := `
SELECT
    bkg.agent_id,
    bkg.bookings,
    bkg.sales,
    bkg.profit,
    agents.name AS agent_name
FROM
    (
        SELECT
            agent_id,
            COUNT(bookings.id) AS bookings,
            COALESCE(SUM(ticket_amount), 0) AS sales,
            COALESCE(SUM(profit_amount), 0) AS profit
        FROM
            bookings
        GROUP BY
            agent_id
    ) AS bkg
    LEFT JOIN agents ON agents.id = bkg.agent_id
ORDER BY bkg.bookings DESC
LIMIT 10;
`

	var records []*SalesByAgentResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&records).Error; err != nil {
		return nil, err
	}

	for _, r := range records {
		switch metric {
		case "sales":
			r.Value = r.Sales
		case "profit":
			r.Value = r.Profit
		default:
			r.Value = decimal.NewFromInt(r.Bookings)
		}
	}
	return records, nil
}
