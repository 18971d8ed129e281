package models

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusPending   = "Pending"
	BookingStatusCancelled = "Cancelled"

	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
	PaymentStatusUnpaid  = "Unpaid"
)

type Customer struct {
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;not null" json:"email"`
	Phone string `gorm:"size:30;not null" json:"phone"`
}

type Booking struct {
	ID               int              `gorm:"primary_key" json:"id"`
	BookingNumber    string           `gorm:"size:30;uniqueIndex;not null" json:"booking_number"`
	Customer         Customer         `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	AgentId          int              `gorm:"index;not null" json:"agent_id"`
	Agent            *Agent           `json:"agent,omitempty"`
	UserId           int              `gorm:"index" json:"user_id"`
	DeparturePlace   string           `gorm:"size:100" json:"departure_place"`
	Destination      string           `gorm:"size:100;index;not null" json:"destination"`
	DepartureDate    time.Time        `json:"departure_date"`
	ReturnDate       *time.Time       `json:"return_date,omitempty"`
	TicketAmount     decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"ticket_amount"`
	CommissionAmount decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"commission_amount"`
	ProfitAmount     decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"profit_amount"`
	Status           string           `gorm:"size:20;default:Pending" json:"status"`
	PaymentStatus    string           `gorm:"size:20;default:Unpaid" json:"payment_status"`
	Notes            string           `gorm:"size:1000" json:"notes"`
	Payments         []BookingPayment `gorm:"foreignKey:BookingId" json:"payments,omitempty"`
	CreatedAt        time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type BookingPayment struct {
	ID              int             `gorm:"primary_key" json:"id"`
	BookingId       int             `gorm:"index;not null" json:"booking_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethod   string          `gorm:"size:50" json:"payment_method"`
	ReferenceNumber string          `gorm:"size:50" json:"reference_number"`
	Notes           string          `gorm:"size:255" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewBooking struct {
	Customer         Customer         `json:"customer" binding:"required"`
	AgentId          int              `json:"agent_id" binding:"required"`
	DeparturePlace   string           `json:"departure_place"`
	Destination      string           `json:"destination" binding:"required"`
	DepartureDate    time.Time        `json:"departure_date" binding:"required"`
	ReturnDate       *time.Time       `json:"return_date"`
	TicketAmount     decimal.Decimal  `json:"ticket_amount" binding:"required"`
	CommissionAmount decimal.Decimal  `json:"commission_amount"`
	ProfitAmount     *decimal.Decimal `json:"profit_amount"`
	Status           string           `json:"status"`
	PaymentStatus    string           `json:"payment_status"`
	Notes            string           `json:"notes"`
}

type NewBookingPayment struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     time.Time       `json:"payment_date" binding:"required"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

func (input *NewBooking) validate(ctx context.Context) error {
	if !utils.IsValidEmail(input.Customer.Email) {
		return utils.NewValidationError("customer.email", "invalid email address")
	}
	if err := utils.ValidatePhoneNumber(input.Customer.Phone, utils.CountryCode); err != nil {
		return utils.NewValidationError("customer.phone", "invalid phone number")
	}
	if input.TicketAmount.IsNegative() {
		return utils.NewValidationError("ticket_amount", "ticket amount must not be negative")
	}
	if input.CommissionAmount.IsNegative() {
		return utils.NewValidationError("commission_amount", "commission amount must not be negative")
	}
	if input.Status != "" && input.Status != BookingStatusConfirmed &&
		input.Status != BookingStatusPending && input.Status != BookingStatusCancelled {
		return utils.NewValidationError("status", "unknown status")
	}
	if input.PaymentStatus != "" && input.PaymentStatus != PaymentStatusPaid &&
		input.PaymentStatus != PaymentStatusPartial && input.PaymentStatus != PaymentStatusUnpaid {
		return utils.NewValidationError("payment_status", "unknown payment status")
	}
	if err := validateAgentId(ctx, input.AgentId); err != nil {
		return err
	}
	return nil
}

// updateColumns keys by DB column name. The embedded Customer fields register
// under their inner names (Name/Email/Phone), so the prefixed customer_*
// columns are only addressable this way.
func (input *NewBooking) updateColumns() map[string]interface{} {
	updates := map[string]interface{}{
		"customer_name":     input.Customer.Name,
		"customer_email":    input.Customer.Email,
		"customer_phone":    input.Customer.Phone,
		"agent_id":          input.AgentId,
		"departure_place":   input.DeparturePlace,
		"destination":       input.Destination,
		"departure_date":    input.DepartureDate,
		"return_date":       input.ReturnDate,
		"ticket_amount":     input.TicketAmount,
		"commission_amount": input.CommissionAmount,
		"profit_amount":     profitOrDerived(input.TicketAmount, input.CommissionAmount, input.ProfitAmount),
		"notes":             input.Notes,
	}
	if input.Status != "" {
		updates["status"] = input.Status
	}
	if input.PaymentStatus != "" {
		updates["payment_status"] = input.PaymentStatus
	}
	return updates
}

// profitOrDerived returns the supplied profit, or ticket - commission when the
// caller left it out.
func profitOrDerived(ticket, commission decimal.Decimal, supplied *decimal.Decimal) decimal.Decimal {
	if supplied != nil {
		return *supplied
	}
	return ticket.Sub(commission)
}

// generateBookingNumber builds BK<year><6-digit timestamp><3-digit random>.
// Uniqueness is weak by construction: a collision gets one retry with an extra
// 2-digit random suffix, which is still not guaranteed unique under
// adversarial concurrency. The unique index is the final arbiter.
func generateBookingNumber(now time.Time) string {
	millis := fmt.Sprint(now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("BK%d%s%03d", now.Year(), millis, rand.Intn(1000))
}

func extendBookingNumber(number string) string {
	return fmt.Sprintf("%s%02d", number, rand.Intn(100))
}

// CreateBooking persists the booking and consumes credit for its commission in
// one transaction: insufficient credit leaves no booking row and no credit
// mutation behind.
func CreateBooking(ctx context.Context, input *NewBooking) (*Booking, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	lock, err := utils.CreditLock(ctx, "booking.go", "CreateBooking")
	if err != nil {
		return nil, err
	}
	if lock != nil {
		defer lock.Release(ctx)
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	if err := acquireCreditPostingLock(tx); err != nil {
		return nil, err
	}
	defer releaseCreditPostingLock(tx)

	now := time.Now()
	bookingNumber := generateBookingNumber(now)
	var count int64
	if err := tx.Model(&Booking{}).Where("booking_number = ?", bookingNumber).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		bookingNumber = extendBookingNumber(bookingNumber)
	}

	booking := Booking{
		BookingNumber:    bookingNumber,
		Customer:         input.Customer,
		AgentId:          input.AgentId,
		UserId:           userId,
		DeparturePlace:   input.DeparturePlace,
		Destination:      input.Destination,
		DepartureDate:    input.DepartureDate,
		ReturnDate:       input.ReturnDate,
		TicketAmount:     input.TicketAmount,
		CommissionAmount: input.CommissionAmount,
		ProfitAmount:     profitOrDerived(input.TicketAmount, input.CommissionAmount, input.ProfitAmount),
		Status:           firstNonEmpty(input.Status, BookingStatusPending),
		PaymentStatus:    firstNonEmpty(input.PaymentStatus, PaymentStatusUnpaid),
		Notes:            input.Notes,
	}
	if err := tx.Create(&booking).Error; err != nil {
		return nil, err
	}

	if _, err := ConsumeCreditForBooking(tx, booking.CommissionAmount, booking.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetBooking(ctx, booking.ID)
}

func GetBookings(ctx context.Context) ([]*Booking, error) {
	db := config.GetDB()
	var bookings []*Booking
	err := db.WithContext(ctx).Preload("Agent").Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func GetBooking(ctx context.Context, id int) (*Booking, error) {
	db := config.GetDB()
	var booking Booking
	err := db.WithContext(ctx).Preload("Agent").Preload("Payments").First(&booking, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking edits the row in place. Credit is never re-consumed on edit;
// the running balance is computed at read time, so amounts may change freely.
func UpdateBooking(ctx context.Context, id int, input *NewBooking) (*Booking, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var booking Booking
	err := db.WithContext(ctx).First(&booking, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(&booking).Updates(input.updateColumns()).Error; err != nil {
		return nil, err
	}

	return GetBooking(ctx, id)
}

func DeleteBooking(ctx context.Context, id int) (*Booking, error) {
	db := config.GetDB()
	var booking Booking
	err := db.WithContext(ctx).First(&booking, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Select("Payments").Delete(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// AddBookingPayment appends a payment row and rolls the payment status forward
// when the paid total reaches the ticket amount.
func AddBookingPayment(ctx context.Context, bookingId int, input *NewBookingPayment) (*Booking, error) {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, utils.NewValidationError("amount", "payment amount must be positive")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	var booking Booking
	err := tx.Preload("Payments").First(&booking, bookingId).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	payment := BookingPayment{
		BookingId:       booking.ID,
		Amount:          input.Amount,
		PaymentDate:     input.PaymentDate,
		PaymentMethod:   input.PaymentMethod,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}

	paid := input.Amount
	for _, p := range booking.Payments {
		paid = paid.Add(p.Amount)
	}
	status := PaymentStatusPartial
	if paid.GreaterThanOrEqual(booking.TicketAmount) {
		status = PaymentStatusPaid
	}
	if err := tx.Model(&booking).Update("PaymentStatus", status).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetBooking(ctx, bookingId)
}

func validateAgentId(ctx context.Context, id int) error {
	if id <= 0 {
		return utils.NewValidationError("agent_id", "agent is required")
	}
	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&Agent{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count <= 0 {
		return errors.New("agent not found")
	}
	return nil
}
