package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CreditHistoryIncrease = "increase"
	CreditHistoryDecrease = "decrease"
	CreditHistoryBooking  = "booking"
)

// Credit is the shared credit pool consumed by bookings. A single row is
// expected; every mutation appends to History.
type Credit struct {
	ID          int             `gorm:"primary_key" json:"id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	UsedAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"used_amount"`
	Notes       string          `gorm:"size:255" json:"notes"`
	LastUpdated time.Time       `json:"last_updated"`
	History     []CreditHistory `gorm:"foreignKey:CreditId" json:"history"`
}

// CreditHistory rows are append-only; nothing in this package updates or
// deletes them once written.
type CreditHistory struct {
	ID        int             `gorm:"primary_key" json:"id"`
	CreditId  int             `gorm:"index;not null" json:"credit_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Type      string          `gorm:"size:20;not null" json:"type"`
	BookingId *int            `gorm:"index" json:"booking_id,omitempty"`
	Date      time.Time       `json:"date"`
	Notes     string          `gorm:"size:255" json:"notes"`
}

// AvailableAmount is derived, never stored: available = total - used holds by
// construction.
func (c *Credit) AvailableAmount() decimal.Decimal {
	return c.TotalAmount.Sub(c.UsedAmount)
}

func (c *Credit) MarshalJSON() ([]byte, error) {
	type alias Credit
	return json.Marshal(&struct {
		*alias
		AvailableAmount decimal.Decimal `json:"available_amount"`
	}{
		alias:           (*alias)(c),
		AvailableAmount: c.AvailableAmount(),
	})
}

type CreditCheckResult struct {
	Available       bool            `json:"available"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Message         string          `json:"message"`
}

// checkCredit is the pure availability decision; DB-free for testability.
func checkCredit(total, used, requested decimal.Decimal) CreditCheckResult {
	available := total.Sub(used)
	if requested.LessThanOrEqual(available) {
		return CreditCheckResult{
			Available:       true,
			AvailableAmount: available,
			RequestedAmount: requested,
			Message:         "Credit available",
		}
	}
	return CreditCheckResult{
		Available:       false,
		AvailableAmount: available,
		RequestedAmount: requested,
		Message: fmt.Sprintf("Insufficient credit. Available: %s, Requested: %s",
			available.String(), requested.String()),
	}
}

// totalChangeEntry builds the audit row for a credit-limit overwrite.
func totalChangeEntry(oldTotal, newTotal decimal.Decimal, notes string) CreditHistory {
	entryType := CreditHistoryDecrease
	if newTotal.GreaterThan(oldTotal) {
		entryType = CreditHistoryIncrease
	}
	if notes == "" {
		notes = "Credit limit updated"
	}
	return CreditHistory{
		Amount: newTotal.Sub(oldTotal),
		Type:   entryType,
		Date:   time.Now(),
		Notes:  notes,
	}
}

func usedChangeEntry(oldUsed, newUsed decimal.Decimal, bookingId *int, notes string) CreditHistory {
	if notes == "" {
		notes = "Used amount updated"
	}
	return CreditHistory{
		Amount:    newUsed.Sub(oldUsed),
		Type:      CreditHistoryBooking,
		BookingId: bookingId,
		Date:      time.Now(),
		Notes:     notes,
	}
}

// GetOrCreateCredit returns the singleton credit record, creating a zeroed one
// when none exists yet. Never fails on absence.
func GetOrCreateCredit(ctx context.Context) (*Credit, error) {
	db := config.GetDB()

	var credit Credit
	err := db.WithContext(ctx).Preload("History").First(&credit).Error
	if err == nil {
		return &credit, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	credit = Credit{
		TotalAmount: decimal.Zero,
		UsedAmount:  decimal.Zero,
		Notes:       "Initial credit setup",
		LastUpdated: time.Now(),
	}
	if err := db.WithContext(ctx).Create(&credit).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}

// CheckCreditAvailability answers whether requested commission fits in the
// remaining pool. A missing record is not an error: it reports unavailable.
func CheckCreditAvailability(ctx context.Context, requested decimal.Decimal) (*CreditCheckResult, error) {
	if requested.IsNegative() {
		return nil, utils.NewValidationError("amount", "amount must not be negative")
	}

	db := config.GetDB()
	var credit Credit
	err := db.WithContext(ctx).First(&credit).Error
	if err == gorm.ErrRecordNotFound {
		return &CreditCheckResult{
			Available:       false,
			RequestedAmount: requested,
			Message:         "No credit has been set up",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	result := checkCredit(credit.TotalAmount, credit.UsedAmount, requested)
	return &result, nil
}

// SetCreditTotal overwrites the credit limit and appends an increase/decrease
// history entry for the delta.
func SetCreditTotal(ctx context.Context, newTotal decimal.Decimal, notes string) (*Credit, error) {
	if newTotal.IsNegative() {
		return nil, utils.NewValidationError("totalAmount", "total amount must not be negative")
	}

	lock, err := utils.CreditLock(ctx, "credit.go", "SetCreditTotal")
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

	var credit Credit
	err = tx.First(&credit).Error
	if err == gorm.ErrRecordNotFound {
		credit = Credit{
			TotalAmount: newTotal,
			UsedAmount:  decimal.Zero,
			Notes:       firstNonEmpty(notes, "Initial credit setup"),
			LastUpdated: time.Now(),
		}
		if err := tx.Create(&credit).Error; err != nil {
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
		return &credit, nil
	}
	if err != nil {
		return nil, err
	}

	entry := totalChangeEntry(credit.TotalAmount, newTotal, notes)
	entry.CreditId = credit.ID
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	credit.TotalAmount = newTotal
	credit.Notes = firstNonEmpty(notes, credit.Notes)
	credit.LastUpdated = time.Now()
	if err := tx.Model(&credit).Updates(map[string]interface{}{
		"TotalAmount": credit.TotalAmount,
		"Notes":       credit.Notes,
		"LastUpdated": credit.LastUpdated,
	}).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	warnIfOverConsumed(&credit, "SetCreditTotal")
	return reloadCredit(ctx, credit.ID)
}

// SetCreditUsed is the administrative override of the consumed amount. It
// fails when no credit record exists yet.
func SetCreditUsed(ctx context.Context, newUsed decimal.Decimal, notes string) (*Credit, error) {
	if newUsed.IsNegative() {
		return nil, utils.NewValidationError("usedAmount", "used amount must not be negative")
	}

	lock, err := utils.CreditLock(ctx, "credit.go", "SetCreditUsed")
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

	var credit Credit
	err = tx.First(&credit).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	entry := usedChangeEntry(credit.UsedAmount, newUsed, nil, notes)
	entry.CreditId = credit.ID
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	credit.UsedAmount = newUsed
	credit.LastUpdated = time.Now()
	if err := tx.Model(&credit).Updates(map[string]interface{}{
		"UsedAmount":  credit.UsedAmount,
		"LastUpdated": credit.LastUpdated,
	}).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	warnIfOverConsumed(&credit, "SetCreditUsed")
	return reloadCredit(ctx, credit.ID)
}

// ConsumeCreditForBooking runs inside the booking-create transaction: it
// checks availability and increments the used amount as one step, so an
// insufficient pool aborts the booking before anything is persisted.
// The caller must hold the credit posting lock on tx.
func ConsumeCreditForBooking(tx *gorm.DB, commission decimal.Decimal, bookingId int) (*Credit, error) {
	if commission.IsNegative() {
		return nil, utils.NewValidationError("commissionAmount", "commission amount must not be negative")
	}

	var credit Credit
	err := tx.First(&credit).Error
	if err == gorm.ErrRecordNotFound {
		if commission.IsPositive() {
			return nil, &utils.InsufficientCreditError{
				Available: decimal.Zero,
				Requested: commission,
			}
		}
		credit = Credit{
			TotalAmount: decimal.Zero,
			UsedAmount:  decimal.Zero,
			Notes:       "Initial credit setup",
			LastUpdated: time.Now(),
		}
		if err := tx.Create(&credit).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if commission.GreaterThan(credit.AvailableAmount()) {
		return nil, &utils.InsufficientCreditError{
			Available: credit.AvailableAmount(),
			Requested: commission,
		}
	}

	entry := CreditHistory{
		CreditId:  credit.ID,
		Amount:    commission,
		Type:      CreditHistoryBooking,
		BookingId: &bookingId,
		Date:      time.Now(),
		Notes:     "Credit consumed by booking",
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	credit.UsedAmount = credit.UsedAmount.Add(commission)
	credit.LastUpdated = time.Now()
	if err := tx.Model(&credit).Updates(map[string]interface{}{
		"UsedAmount":  credit.UsedAmount,
		"LastUpdated": credit.LastUpdated,
	}).Error; err != nil {
		return nil, err
	}

	return &credit, nil
}

// Over-consumption is a soft invariant: warn, never block. Pre-existing
// excess must survive administrative overrides.
func warnIfOverConsumed(credit *Credit, funcName string) {
	if credit.UsedAmount.GreaterThan(credit.TotalAmount) {
		config.LogWarn(config.GetLogger(), "credit.go", funcName, "used amount exceeds total",
			map[string]string{
				"total_amount": credit.TotalAmount.String(),
				"used_amount":  credit.UsedAmount.String(),
			}, "credit pool over-consumed")
	}
}

func reloadCredit(ctx context.Context, id int) (*Credit, error) {
	db := config.GetDB()
	var credit Credit
	if err := db.WithContext(ctx).Preload("History").First(&credit, id).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
