package models

import (
	"context"
	"errors"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      string    `gorm:"size:20;default:user" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var (
	ErrorEmailInUse      = errors.New("email already in use")
	ErrorUsernameInUse   = errors.New("username already in use")
	ErrorBadCredentials  = errors.New("invalid email or password")
	ErrorUserDeactivated = errors.New("user account is deactivated")
)

func RegisterUser(ctx context.Context, input *NewUser) (*User, error) {
	if !utils.IsValidEmail(input.Email) {
		return nil, utils.NewValidationError("email", "invalid email address")
	}

	db := config.GetDB()

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrorEmailInUse
	}
	if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrorUsernameInUse
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Role:     firstNonEmpty(input.Role, "user"),
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginUser verifies credentials and returns the user plus a signed JWT.
func LoginUser(ctx context.Context, input *LoginInput) (*User, string, error) {
	db := config.GetDB()

	var user User
	err := db.WithContext(ctx).Where("email = ?", input.Email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, "", ErrorBadCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", ErrorUserDeactivated
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return nil, "", ErrorBadCredentials
	}

	token, err := utils.JwtGenerate(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}
