package reports

import (
	"fmt"
	"io"

	"github.com/airbooker/bookings_backend/models"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/xuri/excelize/v2"
)

var ledgerSheetHeadings = []string{
	"Reference", "Date", "Customer", "Email", "Phone",
	"Departure", "Destination", "Departure Date", "Return Date",
	"Debit", "Credit", "Balance",
	"Agent", "Status", "Payment Status", "Notes",
}

// WriteBookingsLedgerXLSX renders the booking ledger (running Balance column
// included) as a spreadsheet.
func WriteBookingsLedgerXLSX(w io.Writer, bookings []*models.Booking) error {
	ledger := models.ComputeBookingLedger(bookings)

	byId := make(map[int]*models.Booking, len(bookings))
	for _, b := range bookings {
		byId[b.ID] = b
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	// Add headers
	for i, h := range ledgerSheetHeadings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, h)
	}

	// Add data
	for rowIdx, e := range ledger.Entries {
		b := byId[e.BookingId]
		returnDate := ""
		if b.ReturnDate != nil {
			returnDate = b.ReturnDate.Format("2006-01-02")
		}
		values := []interface{}{
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
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
