package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the system
type User struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPass  string         `gorm:"size:255;not null" json:"-"`
	DisplayName string         `gorm:"size:100;not null" json:"display_name"`
	Events      []Event        `gorm:"foreignKey:UserID" json:"-"`
	LastLogin   time.Time      `json:"last_login"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook is called before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	if u.LastLogin.IsZero() {
		u.LastLogin = now
	}
	return nil
}

// BeforeSave hook is called before saving the user
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "user"
}

// RegisterRequest represents the data needed to create a new account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
}

// LoginRequest represents the data needed for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
