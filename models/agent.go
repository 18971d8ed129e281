package models

import (
	"context"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Agent struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Email          string          `gorm:"size:100;not null" json:"email"`
	Phone          string          `gorm:"size:30" json:"phone"`
	Address        string          `gorm:"size:255" json:"address"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(10,4);default:0" json:"commission_rate"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAgent struct {
	Name           string          `json:"name" binding:"required"`
	Email          string          `json:"email" binding:"required"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (input *NewAgent) validate() error {
	if !utils.IsValidEmail(input.Email) {
		return utils.NewValidationError("email", "invalid email address")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.NewValidationError("phone", "invalid phone number")
		}
	}
	if input.CommissionRate.IsNegative() {
		return utils.NewValidationError("commission_rate", "commission rate must not be negative")
	}
	return nil
}

func CreateAgent(ctx context.Context, input *NewAgent) (*Agent, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	agent := Agent{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		CommissionRate: input.CommissionRate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func GetAgents(ctx context.Context) ([]*Agent, error) {
	db := config.GetDB()
	var agents []*Agent
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func GetAgent(ctx context.Context, id int) (*Agent, error) {
	db := config.GetDB()
	var agent Agent
	err := db.WithContext(ctx).First(&agent, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func UpdateAgent(ctx context.Context, id int, input *NewAgent) (*Agent, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	agent, err := GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(agent).Updates(map[string]interface{}{
		"Name":           input.Name,
		"Email":          input.Email,
		"Phone":          input.Phone,
		"Address":        input.Address,
		"CommissionRate": input.CommissionRate,
	}).Error; err != nil {
		return nil, err
	}
	return agent, nil
}

func DeleteAgent(ctx context.Context, id int) (*Agent, error) {
	agent, err := GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	// Keep bookings intact: they reference the agent by id only.
	if err := db.WithContext(ctx).Delete(agent).Error; err != nil {
		return nil, err
	}
	return agent, nil
}
