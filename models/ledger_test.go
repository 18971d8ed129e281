package models

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func ledgerBooking(id int, createdAt time.Time, ticket, commission string) *Booking {
	return &Booking{
		ID:               id,
		BookingNumber:    fmt.Sprintf("BK2026%09d", id),
		Customer:         Customer{Name: "Customer", Email: "c@example.com", Phone: "2025550100"},
		TicketAmount:     dec(ticket),
		CommissionAmount: dec(commission),
		DepartureDate:    createdAt,
		CreatedAt:        createdAt,
	}
}

func TestComputeBookingLedgerRunningBalance(t *testing.T) {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		ledgerBooking(1, base, "100", "10"),
		ledgerBooking(2, base.Add(time.Hour), "50", "5"),
	}

	ledger := ComputeBookingLedger(bookings)

	if len(ledger.Entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(ledger.Entries))
	}
	if !ledger.Entries[0].Balance.Equal(dec("90")) {
		t.Errorf("first balance = %s, want 90", ledger.Entries[0].Balance)
	}
	if !ledger.Entries[1].Balance.Equal(dec("135")) {
		t.Errorf("second balance = %s, want 135", ledger.Entries[1].Balance)
	}
	if !ledger.TotalBalance.Equal(dec("135")) {
		t.Errorf("total balance = %s, want 135", ledger.TotalBalance)
	}
}

func TestComputeBookingLedgerOrderIndependence(t *testing.T) {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	ordered := []*Booking{
		ledgerBooking(1, base, "100", "10"),
		ledgerBooking(2, base.Add(time.Hour), "50", "5"),
		ledgerBooking(3, base.Add(2*time.Hour), "200", "40"),
	}
	shuffled := []*Booking{ordered[2], ordered[0], ordered[1]}

	want := ComputeBookingLedger(ordered)
	got := ComputeBookingLedger(shuffled)

	if len(got.Entries) != len(want.Entries) {
		t.Fatalf("len(entries) = %d, want %d", len(got.Entries), len(want.Entries))
	}
	for i := range want.Entries {
		if got.Entries[i].BookingId != want.Entries[i].BookingId {
			t.Errorf("entry %d bookingId = %d, want %d", i, got.Entries[i].BookingId, want.Entries[i].BookingId)
		}
		if !got.Entries[i].Balance.Equal(want.Entries[i].Balance) {
			t.Errorf("entry %d balance = %s, want %s", i, got.Entries[i].Balance, want.Entries[i].Balance)
		}
	}

	// The input slice must come back untouched.
	if shuffled[0].ID != 3 || shuffled[1].ID != 1 || shuffled[2].ID != 2 {
		t.Error("input slice order was mutated")
	}
}

func TestComputeBookingLedgerStableTies(t *testing.T) {
	at := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		ledgerBooking(7, at, "10", "1"),
		ledgerBooking(3, at, "20", "2"),
	}

	ledger := ComputeBookingLedger(bookings)
	if ledger.Entries[0].BookingId != 7 || ledger.Entries[1].BookingId != 3 {
		t.Errorf("tie order = [%d %d], want [7 3]",
			ledger.Entries[0].BookingId, ledger.Entries[1].BookingId)
	}
}

func TestEntriesNewestFirstKeepsBalances(t *testing.T) {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	ledger := ComputeBookingLedger([]*Booking{
		ledgerBooking(1, base, "100", "10"),
		ledgerBooking(2, base.Add(time.Hour), "50", "5"),
	})

	display := ledger.EntriesNewestFirst()
	if display[0].BookingId != 2 {
		t.Errorf("first display entry = booking %d, want 2", display[0].BookingId)
	}
	// Reversal reorders rows only; every balance keeps its chronological value.
	if !display[0].Balance.Equal(dec("135")) {
		t.Errorf("newest balance = %s, want 135", display[0].Balance)
	}
	if !display[1].Balance.Equal(dec("90")) {
		t.Errorf("oldest balance = %s, want 90", display[1].Balance)
	}
}

func TestComputeBookingLedgerEmpty(t *testing.T) {
	ledger := ComputeBookingLedger(nil)
	if len(ledger.Entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(ledger.Entries))
	}
	if !ledger.TotalBalance.Equal(decimal.Zero) {
		t.Errorf("total balance = %s, want 0", ledger.TotalBalance)
	}
}

func TestBookingsLedgerCSVEmptySet(t *testing.T) {
	data, err := BookingsLedgerCSV(nil)
	if err != nil {
		t.Fatalf("BookingsLedgerCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want header only", len(records))
	}
	if records[0][0] != "Reference" || records[0][11] != "Balance" {
		t.Errorf("unexpected header: %v", records[0])
	}
}

func TestBookingsLedgerCSVBalanceColumn(t *testing.T) {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		ledgerBooking(1, base, "100", "10"),
		ledgerBooking(2, base.Add(time.Hour), "0", "1334.50"),
	}

	data, err := BookingsLedgerCSV(bookings)
	if err != nil {
		t.Fatalf("BookingsLedgerCSV: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	if records[1][9] != "100.00" || records[1][10] != "10.00" {
		t.Errorf("first row debit/credit = %q/%q", records[1][9], records[1][10])
	}
	if records[1][11] != "90.00" {
		t.Errorf("first row balance = %q, want 90.00", records[1][11])
	}
	// Second row pushes the balance negative: rendered accounting-style.
	if records[2][11] != "(1,244.50)" {
		t.Errorf("second row balance = %q, want (1,244.50)", records[2][11])
	}
	if records[1][1] != "2026-01-10" {
		t.Errorf("date = %q, want 2026-01-10", records[1][1])
	}
}
