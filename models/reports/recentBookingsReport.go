package reports

import (
	"context"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/models"
)

type RecentBooking struct {
	Id          int    `json:"id"`
	Customer    string `json:"customer"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Profit      string `json:"profit"`
	Agent       string `json:"agent"`
	Status      string `json:"status"`
}

// GetRecentBookings returns the latest 5 bookings pre-formatted for the
// dashboard widget.
func GetRecentBookings(ctx context.Context) ([]RecentBooking, error) {
	db := config.GetDB()
	var bookings []*models.Booking
	err := db.WithContext(ctx).Preload("Agent").Order("created_at DESC").Limit(5).Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	recent := make([]RecentBooking, 0, len(bookings))
	for _, b := range bookings {
		agentName := "Unknown"
		if b.Agent != nil {
			agentName = b.Agent.Name
		}
		recent = append(recent, RecentBooking{
			Id:          b.ID,
			Customer:    b.Customer.Name,
			Destination: b.Destination,
			Date:        b.DepartureDate.Format("2006-01-02"),
			Amount:      "$" + b.TicketAmount.StringFixed(2),
			Profit:      "$" + b.ProfitAmount.StringFixed(2),
			Agent:       agentName,
			Status:      b.Status,
		})
	}
	return recent, nil
}
