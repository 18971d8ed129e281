package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// The embedded Customer columns are only reachable through their customer_*
// column names; field-style keys used to produce SQL against columns that do
// not exist, failing every booking edit.
func TestUpdateColumnsApplyToStoredBooking(t *testing.T) {
	db := newTestDB(t, &Agent{}, &Booking{})

	agent := Agent{Name: "Skyline Travel", Email: "contact@skylinetravel.com"}
	if err := db.Create(&agent).Error; err != nil {
		t.Fatalf("create agent: %v", err)
	}

	departure := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	booking := Booking{
		BookingNumber:    "BK2026000000001",
		Customer:         Customer{Name: "Old Name", Email: "old@example.com", Phone: "2025550100"},
		AgentId:          agent.ID,
		DeparturePlace:   "Seattle",
		Destination:      "Tokyo",
		DepartureDate:    departure,
		TicketAmount:     dec("1200"),
		CommissionAmount: dec("120"),
		ProfitAmount:     dec("1080"),
		Status:           BookingStatusPending,
		PaymentStatus:    PaymentStatusUnpaid,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}

	input := NewBooking{
		Customer:         Customer{Name: "New Name", Email: "new@example.com", Phone: "2025550199"},
		AgentId:          agent.ID,
		DeparturePlace:   "Portland",
		Destination:      "Osaka",
		DepartureDate:    departure.AddDate(0, 0, 3),
		TicketAmount:     dec("1500"),
		CommissionAmount: dec("150"),
		Status:           BookingStatusConfirmed,
	}

	if err := db.Model(&booking).Updates(input.updateColumns()).Error; err != nil {
		t.Fatalf("apply updates: %v", err)
	}

	var got Booking
	if err := db.First(&got, booking.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}

	if got.Customer.Name != "New Name" || got.Customer.Email != "new@example.com" || got.Customer.Phone != "2025550199" {
		t.Errorf("customer = %+v, want updated values", got.Customer)
	}
	if got.Destination != "Osaka" || got.DeparturePlace != "Portland" {
		t.Errorf("route = %s -> %s, want Portland -> Osaka", got.DeparturePlace, got.Destination)
	}
	if !got.TicketAmount.Equal(dec("1500")) {
		t.Errorf("ticket = %s, want 1500", got.TicketAmount)
	}
	if !got.ProfitAmount.Equal(dec("1350")) {
		t.Errorf("profit = %s, want derived 1350", got.ProfitAmount)
	}
	if got.Status != BookingStatusConfirmed {
		t.Errorf("status = %q, want Confirmed", got.Status)
	}
	// Empty payment status in the input must leave the stored value alone.
	if got.PaymentStatus != PaymentStatusUnpaid {
		t.Errorf("payment status = %q, want Unpaid", got.PaymentStatus)
	}
}

func TestUpdateColumnsOmitStatusesWhenEmpty(t *testing.T) {
	input := NewBooking{TicketAmount: decimal.Zero}

	updates := input.updateColumns()
	if _, ok := updates["status"]; ok {
		t.Error("empty status must not appear in the update set")
	}
	if _, ok := updates["payment_status"]; ok {
		t.Error("empty payment status must not appear in the update set")
	}

	input.Status = BookingStatusCancelled
	input.PaymentStatus = PaymentStatusPaid
	updates = input.updateColumns()
	if updates["status"] != BookingStatusCancelled || updates["payment_status"] != PaymentStatusPaid {
		t.Errorf("statuses = %v/%v, want Cancelled/Paid", updates["status"], updates["payment_status"])
	}
}
