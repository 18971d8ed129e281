package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/airbooker/bookings_backend/models"
	"github.com/airbooker/bookings_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func ListBookingsHandler(c *gin.Context) {
	bookings, err := models.GetBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, "booking_handler.go", "ListBookingsHandler", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func CreateBookingHandler(c *gin.Context) {
	var input models.NewBooking
	if !bindJSON(c, &input) {
		return
	}

	booking, err := models.CreateBooking(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, "booking_handler.go", "CreateBookingHandler", err)
		return
	}
	reports.InvalidateDashboardStats()
	c.JSON(http.StatusCreated, booking)
}

func GetBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	booking, err := models.GetBooking(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, "booking_handler.go", "GetBookingHandler", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func UpdateBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.NewBooking
	if !bindJSON(c, &input) {
		return
	}

	booking, err := models.UpdateBooking(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, "booking_handler.go", "UpdateBookingHandler", err)
		return
	}
	reports.InvalidateDashboardStats()
	c.JSON(http.StatusOK, booking)
}

func DeleteBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := models.DeleteBooking(c.Request.Context(), id); err != nil {
		abortWithError(c, "booking_handler.go", "DeleteBookingHandler", err)
		return
	}
	reports.InvalidateDashboardStats()
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func AddBookingPaymentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.NewBookingPayment
	if !bindJSON(c, &input) {
		return
	}

	booking, err := models.AddBookingPayment(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, "booking_handler.go", "AddBookingPaymentHandler", err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// BookingLedgerHandler returns the running-balance view, newest first for
// display; each row's balance reflects the oldest-first accumulation.
func BookingLedgerHandler(c *gin.Context) {
	bookings, err := models.GetBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, "booking_handler.go", "BookingLedgerHandler", err)
		return
	}

	ledger := models.ComputeBookingLedger(bookings)
	c.JSON(http.StatusOK, gin.H{
		"entries":       ledger.EntriesNewestFirst(),
		"total_balance": ledger.TotalBalance,
	})
}

func ExportBookingsCSVHandler(c *gin.Context) {
	bookings, err := models.GetBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, "booking_handler.go", "ExportBookingsCSVHandler", err)
		return
	}

	data, err := models.BookingsLedgerCSV(bookings)
	if err != nil {
		abortWithError(c, "booking_handler.go", "ExportBookingsCSVHandler", err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func ExportBookingsXLSXHandler(c *gin.Context) {
	bookings, err := models.GetBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, "booking_handler.go", "ExportBookingsXLSXHandler", err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := reports.WriteBookingsLedgerXLSX(c.Writer, bookings); err != nil {
		abortWithError(c, "booking_handler.go", "ExportBookingsXLSXHandler", err)
	}
}
