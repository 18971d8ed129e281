package reports

import (
	"context"

	"github.com/airbooker/bookings_backend/config"
	"github.com/shopspring/decimal"
)

type SalesByDestinationResponse struct {
	Name     string          `json:"name"`
	Bookings int64           `json:"bookings"`
	Sales    decimal.Decimal `json:"sales"`
	Profit   decimal.Decimal `json:"profit"`
	Value    decimal.Decimal `json:"value"`
}

// GetSalesByDestinationReport returns the most-booked destinations with their
// sales and profit totals. The dashboard uses the top 8, analytics the top 10.
func GetSalesByDestinationReport(ctx context.Context, metric string, limit int) ([]*SalesByDestinationResponse, error) {
	if limit <= 0 {
		limit = 8
	}

	sql := `
SELECT
    destination AS name,
    COUNT(id) AS bookings,
    COALESCE(SUM(ticket_amount), 0) AS sales,
    COALESCE(SUM(profit_amount), 0) AS profit
FROM
    bookings
GROUP BY
    destination
ORDER BY bookings DESC
LIMIT @limit;
`

	var records []*SalesByDestinationResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"limit": limit,
	}).Scan(&records).Error; err != nil {
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
