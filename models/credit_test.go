package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCheckCredit(t *testing.T) {
	cases := []struct {
		name      string
		total     string
		used      string
		requested string
		available bool
		message   string
	}{
		{"plenty left", "1000", "100", "90", true, "Credit available"},
		{"exactly the remainder", "1000", "910", "90", true, "Credit available"},
		{"one over the remainder", "1000", "910.01", "90", false, "Insufficient credit. Available: 89.99, Requested: 90"},
		{"zero request always fits", "0", "0", "0", true, "Credit available"},
		{"empty pool rejects any amount", "0", "0", "0.01", false, "Insufficient credit. Available: 0, Requested: 0.01"},
		{"over-consumed pool has negative headroom", "100", "150", "0", false, "Insufficient credit. Available: -50, Requested: 0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := checkCredit(dec(tc.total), dec(tc.used), dec(tc.requested))
			if got.Available != tc.available {
				t.Errorf("available = %v, want %v", got.Available, tc.available)
			}
			if got.Message != tc.message {
				t.Errorf("message = %q, want %q", got.Message, tc.message)
			}
			wantHeadroom := dec(tc.total).Sub(dec(tc.used))
			if !got.AvailableAmount.Equal(wantHeadroom) {
				t.Errorf("availableAmount = %s, want %s", got.AvailableAmount, wantHeadroom)
			}
			if !got.RequestedAmount.Equal(dec(tc.requested)) {
				t.Errorf("requestedAmount = %s, want %s", got.RequestedAmount, tc.requested)
			}
		})
	}
}

func TestAvailableAmountIsDerived(t *testing.T) {
	c := Credit{TotalAmount: dec("20000"), UsedAmount: dec("4500.25")}
	if got := c.AvailableAmount(); !got.Equal(dec("15499.75")) {
		t.Errorf("AvailableAmount = %s, want 15499.75", got)
	}

	// Over-consumption yields a negative figure instead of clamping.
	c.UsedAmount = dec("25000")
	if got := c.AvailableAmount(); !got.Equal(dec("-5000")) {
		t.Errorf("AvailableAmount = %s, want -5000", got)
	}
}

func TestTotalChangeEntry(t *testing.T) {
	cases := []struct {
		name     string
		oldTotal string
		newTotal string
		notes    string
		wantType string
		wantAmt  string
		wantNote string
	}{
		{"raise the limit", "1000", "1500", "", CreditHistoryIncrease, "500", "Credit limit updated"},
		{"lower the limit", "1500", "1000", "", CreditHistoryDecrease, "-500", "Credit limit updated"},
		{"unchanged limit records a decrease of zero", "1000", "1000", "", CreditHistoryDecrease, "0", "Credit limit updated"},
		{"caller notes win", "0", "20000", "Opening balance", CreditHistoryIncrease, "20000", "Opening balance"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := totalChangeEntry(dec(tc.oldTotal), dec(tc.newTotal), tc.notes)
			if entry.Type != tc.wantType {
				t.Errorf("type = %q, want %q", entry.Type, tc.wantType)
			}
			if !entry.Amount.Equal(dec(tc.wantAmt)) {
				t.Errorf("amount = %s, want %s", entry.Amount, tc.wantAmt)
			}
			if entry.Notes != tc.wantNote {
				t.Errorf("notes = %q, want %q", entry.Notes, tc.wantNote)
			}
			if entry.BookingId != nil {
				t.Errorf("bookingId = %v, want nil", *entry.BookingId)
			}
		})
	}
}

func TestUsedChangeEntry(t *testing.T) {
	entry := usedChangeEntry(dec("100"), dec("250"), nil, "")
	if entry.Type != CreditHistoryBooking {
		t.Errorf("type = %q, want %q", entry.Type, CreditHistoryBooking)
	}
	if !entry.Amount.Equal(dec("150")) {
		t.Errorf("amount = %s, want 150", entry.Amount)
	}
	if entry.Notes != "Used amount updated" {
		t.Errorf("notes = %q, want default", entry.Notes)
	}

	bookingId := 42
	entry = usedChangeEntry(dec("250"), dec("100"), &bookingId, "manual correction")
	if !entry.Amount.Equal(dec("-150")) {
		t.Errorf("amount = %s, want -150", entry.Amount)
	}
	if entry.BookingId == nil || *entry.BookingId != 42 {
		t.Errorf("bookingId = %v, want 42", entry.BookingId)
	}
	if entry.Notes != "manual correction" {
		t.Errorf("notes = %q, want %q", entry.Notes, "manual correction")
	}
}

func TestGenerateBookingNumber(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	number := generateBookingNumber(now)

	if !strings.HasPrefix(number, "BK2026") {
		t.Errorf("number %q does not start with BK2026", number)
	}
	// BK + 4-digit year + 6-digit millis + 3-digit random
	if len(number) != 15 {
		t.Errorf("len(%q) = %d, want 15", number, len(number))
	}

	extended := extendBookingNumber(number)
	if !strings.HasPrefix(extended, number) {
		t.Errorf("extended %q does not keep prefix %q", extended, number)
	}
	if len(extended) != len(number)+2 {
		t.Errorf("len(extended) = %d, want %d", len(extended), len(number)+2)
	}
}

func TestProfitOrDerived(t *testing.T) {
	if got := profitOrDerived(dec("100"), dec("10"), nil); !got.Equal(dec("90")) {
		t.Errorf("derived profit = %s, want 90", got)
	}

	supplied := dec("25")
	if got := profitOrDerived(dec("100"), dec("10"), &supplied); !got.Equal(dec("25")) {
		t.Errorf("supplied profit = %s, want 25", got)
	}

	// A supplied zero is honored, not treated as missing.
	zero := decimal.Zero
	if got := profitOrDerived(dec("100"), dec("10"), &zero); !got.Equal(decimal.Zero) {
		t.Errorf("supplied zero profit = %s, want 0", got)
	}
}
