package models

import (
	"time"
)

// User represents a customer or admin account
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"size:20;default:customer" json:"role"` // customer, admin
	OTP       *string    `gorm:"size:10" json:"-"`
	OTPExpire *time.Time `json:"-"`
	Address   Address    `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Address is a contact/shipping address
type Address struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Street      string `json:"street"`
	Road        string `json:"road,omitempty"`
	Place       string `json:"place,omitempty"`
	FullAddress string `json:"full_address,omitempty"`
	Pincode     string `json:"pincode"`
	City        string `json:"city"`
	State       string `json:"state"`
}
