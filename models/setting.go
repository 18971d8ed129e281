package models

import (
	"context"
	"errors"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Setting is a per-user singleton created on first read with defaults.
type Setting struct {
	ID                    int             `gorm:"primary_key" json:"id"`
	UserId                int             `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName           string          `gorm:"size:100;default:AirBooker" json:"company_name"`
	DefaultCurrency       string          `gorm:"size:10;default:USD" json:"default_currency"`
	DefaultCommissionRate decimal.Decimal `gorm:"type:decimal(10,4);default:10" json:"default_commission_rate"`
	EmailNotifications    bool            `gorm:"default:true" json:"email_notifications"`
	DarkMode              bool            `gorm:"default:false" json:"dark_mode"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSetting struct {
	CompanyName           string          `json:"company_name" binding:"required"`
	DefaultCurrency       string          `json:"default_currency" binding:"required"`
	DefaultCommissionRate decimal.Decimal `json:"default_commission_rate"`
	EmailNotifications    bool            `json:"email_notifications"`
	DarkMode              bool            `json:"dark_mode"`
}

func GetOrCreateSetting(ctx context.Context) (*Setting, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var setting Setting
	err := db.WithContext(ctx).Where("user_id = ?", userId).First(&setting).Error
	if err == nil {
		return &setting, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	setting = Setting{
		UserId:                userId,
		CompanyName:           "AirBooker",
		DefaultCurrency:       "USD",
		DefaultCommissionRate: decimal.NewFromInt(10),
		EmailNotifications:    true,
		DarkMode:              false,
	}
	if err := db.WithContext(ctx).Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func UpdateSetting(ctx context.Context, input *NewSetting) (*Setting, error) {
	setting, err := GetOrCreateSetting(ctx)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(setting).Updates(map[string]interface{}{
		"CompanyName":           input.CompanyName,
		"DefaultCurrency":       input.DefaultCurrency,
		"DefaultCommissionRate": input.DefaultCommissionRate,
		"EmailNotifications":    input.EmailNotifications,
		"DarkMode":              input.DarkMode,
	}).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
