package models

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"

	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one booking viewed as a double-entry row: ticket amount is
// the debit, commission the credit. Balance is the chronological accumulation
// up to and including this row.
type LedgerEntry struct {
	BookingId     int             `json:"booking_id"`
	BookingNumber string          `json:"booking_number"`
	Date          time.Time       `json:"date"`
	Customer      Customer        `json:"customer"`
	AgentName     string          `json:"agent_name"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

type BookingLedger struct {
	Entries      []LedgerEntry   `json:"entries"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// ComputeBookingLedger derives the running balance over an arbitrary booking
// set. Input order is irrelevant: rows are stable-sorted ascending by
// CreatedAt before accumulating, so ties keep their original order. Stored
// data is never mutated; the balance exists only in the result.
func ComputeBookingLedger(bookings []*Booking) BookingLedger {
	sorted := make([]*Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	entries := make([]LedgerEntry, 0, len(sorted))
	balance := decimal.Zero
	for _, b := range sorted {
		balance = balance.Add(b.TicketAmount).Sub(b.CommissionAmount)
		agentName := ""
		if b.Agent != nil {
			agentName = b.Agent.Name
		}
		entries = append(entries, LedgerEntry{
			BookingId:     b.ID,
			BookingNumber: b.BookingNumber,
			Date:          b.CreatedAt,
			Customer:      b.Customer,
			AgentName:     agentName,
			Debit:         b.TicketAmount,
			Credit:        b.CommissionAmount,
			Balance:       balance,
		})
	}

	return BookingLedger{Entries: entries, TotalBalance: balance}
}

// EntriesNewestFirst returns the display ordering. Each entry keeps the
// balance computed against the oldest-first accumulation, so reversing the
// rows does not change any figure.
func (l BookingLedger) EntriesNewestFirst() []LedgerEntry {
	reversed := make([]LedgerEntry, len(l.Entries))
	for i, e := range l.Entries {
		reversed[len(l.Entries)-1-i] = e
	}
	return reversed
}

var bookingExportHeader = []string{
	"Reference", "Date", "Customer", "Email", "Phone",
	"Departure", "Destination", "Departure Date", "Return Date",
	"Debit", "Credit", "Balance",
	"Agent", "Status", "Payment Status", "Notes",
}

// BookingsLedgerCSV renders the booking set with a running Balance column.
// An empty set yields a header-only file. Negative balances come out
// accounting-style, e.g. (1,234.50).
func BookingsLedgerCSV(bookings []*Booking) ([]byte, error) {
	ledger := ComputeBookingLedger(bookings)

	byId := make(map[int]*Booking, len(bookings))
	for _, b := range bookings {
		byId[b.ID] = b
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(bookingExportHeader); err != nil {
		return nil, err
	}

	for _, e := range ledger.Entries {
		b := byId[e.BookingId]
		returnDate := ""
		if b.ReturnDate != nil {
			returnDate = b.ReturnDate.Format("2006-01-02")
		}
		record := []string{
			e.BookingNumber,
			e.Date.Format("2006-01-02"),
			e.Customer.Name,
			e.Customer.Email,
			e.Customer.Phone,
			b.DeparturePlace,
			b.Destination,
			b.DepartureDate.Format("2006-01-02"),
			returnDate,
			e.Debit.StringFixed(2),
			e.Credit.StringFixed(2),
			utils.FormatAccountingAmount(e.Balance),
			e.AgentName,
			b.Status,
			b.PaymentStatus,
			b.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
