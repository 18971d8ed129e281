package models

import (
	"testing"
	"time"

	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedCredit(t *testing.T, db *gorm.DB, total, used string) *Credit {
	t.Helper()
	credit := Credit{
		TotalAmount: dec(total),
		UsedAmount:  dec(used),
		LastUpdated: time.Now(),
	}
	if err := db.Create(&credit).Error; err != nil {
		t.Fatalf("seed credit: %v", err)
	}
	return &credit
}

func TestConsumeCreditForBookingInsufficientLeavesNoTrace(t *testing.T) {
	db := newTestDB(t, &Credit{}, &CreditHistory{})
	seedCredit(t, db, "100", "50")

	tx := db.Begin()
	_, err := ConsumeCreditForBooking(tx, dec("60"), 1)
	if !utils.IsInsufficientCreditError(err) {
		t.Fatalf("err = %v, want InsufficientCreditError", err)
	}
	ice := err.(*utils.InsufficientCreditError)
	if !ice.Available.Equal(dec("50")) || !ice.Requested.Equal(dec("60")) {
		t.Errorf("error amounts = %s/%s, want 50/60", ice.Available, ice.Requested)
	}
	tx.Rollback()

	var credit Credit
	if err := db.First(&credit).Error; err != nil {
		t.Fatalf("reload credit: %v", err)
	}
	if !credit.UsedAmount.Equal(dec("50")) {
		t.Errorf("used = %s, want unchanged 50", credit.UsedAmount)
	}
	var historyCount int64
	if err := db.Model(&CreditHistory{}).Count(&historyCount).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	if historyCount != 0 {
		t.Errorf("history rows = %d, want none", historyCount)
	}
}

func TestConsumeCreditForBookingAppendsOneEntry(t *testing.T) {
	db := newTestDB(t, &Credit{}, &CreditHistory{})
	seeded := seedCredit(t, db, "100", "50")

	tx := db.Begin()
	credit, err := ConsumeCreditForBooking(tx, dec("30"), 7)
	if err != nil {
		tx.Rollback()
		t.Fatalf("ConsumeCreditForBooking: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit: %v", err)
	}

	if !credit.UsedAmount.Equal(dec("80")) {
		t.Errorf("used = %s, want 80", credit.UsedAmount)
	}

	var stored Credit
	if err := db.Preload("History").First(&stored, seeded.ID).Error; err != nil {
		t.Fatalf("reload credit: %v", err)
	}
	if !stored.UsedAmount.Equal(dec("80")) {
		t.Errorf("stored used = %s, want 80", stored.UsedAmount)
	}
	if len(stored.History) != 1 {
		t.Fatalf("history rows = %d, want exactly 1", len(stored.History))
	}
	entry := stored.History[0]
	if entry.Type != CreditHistoryBooking {
		t.Errorf("entry type = %q, want %q", entry.Type, CreditHistoryBooking)
	}
	if !entry.Amount.Equal(dec("30")) {
		t.Errorf("entry amount = %s, want 30", entry.Amount)
	}
	if entry.BookingId == nil || *entry.BookingId != 7 {
		t.Errorf("entry bookingId = %v, want 7", entry.BookingId)
	}
	if entry.Notes != "Credit consumed by booking" {
		t.Errorf("entry notes = %q", entry.Notes)
	}
}

func TestConsumeCreditForBookingExactRemainderSucceeds(t *testing.T) {
	db := newTestDB(t, &Credit{}, &CreditHistory{})
	seedCredit(t, db, "100", "50")

	tx := db.Begin()
	credit, err := ConsumeCreditForBooking(tx, dec("50"), 2)
	if err != nil {
		tx.Rollback()
		t.Fatalf("ConsumeCreditForBooking: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !credit.AvailableAmount().Equal(decimal.Zero) {
		t.Errorf("available = %s, want 0", credit.AvailableAmount())
	}
}

func TestConsumeCreditForBookingNoRecordRejectsPositiveCommission(t *testing.T) {
	db := newTestDB(t, &Credit{}, &CreditHistory{})

	tx := db.Begin()
	_, err := ConsumeCreditForBooking(tx, dec("0.01"), 3)
	tx.Rollback()

	if !utils.IsInsufficientCreditError(err) {
		t.Fatalf("err = %v, want InsufficientCreditError", err)
	}
	ice := err.(*utils.InsufficientCreditError)
	if !ice.Available.Equal(decimal.Zero) {
		t.Errorf("available = %s, want 0", ice.Available)
	}

	var count int64
	if err := db.Model(&Credit{}).Count(&count).Error; err != nil {
		t.Fatalf("count credits: %v", err)
	}
	if count != 0 {
		t.Errorf("credit rows = %d, want none left behind", count)
	}
}
