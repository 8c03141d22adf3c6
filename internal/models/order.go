package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order / line statuses
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Order represents a checkout. Ref is set only when the supplied
// referral code matched a real affiliate at creation time.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Ref           *string         `gorm:"size:20;index" json:"ref,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Address       Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"final_amount"`
	PaymentMethod string          `gorm:"size:30;not null" json:"payment_method"`
	Status        string          `gorm:"size:30;default:Pending" json:"status"`
	DeliveryDate  *time.Time      `json:"delivery_date,omitempty"`

	RazorpayOrderID   string `gorm:"size:100" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `gorm:"size:100" json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `gorm:"size:200" json:"razorpay_signature,omitempty"`

	// Whole-order commission override kept alongside per-line earnings
	Commission       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"commission"`
	CommissionStatus string          `gorm:"size:20;default:Pending" json:"commission_status"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. AffiliateLevelAtTime freezes the
// referrer's level at the moment of sale; commission is always computed
// from this snapshot, never from the affiliate's current level.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID string          `gorm:"size:40" json:"product_id"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Image     string          `gorm:"size:500" json:"image"`
	Size      string          `gorm:"size:20" json:"size"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Qty       int             `gorm:"default:1" json:"qty"`

	AffiliateLevelAtTime *string `gorm:"size:20" json:"affiliate_level_at_time,omitempty"`

	ReturnRequested bool        `gorm:"default:false" json:"return_requested"`
	ReturnReason    string      `gorm:"type:text" json:"return_reason,omitempty"`
	ReturnDate      *time.Time  `json:"return_date,omitempty"`
	ReturnStatus    string      `gorm:"size:20;default:Pending" json:"return_status"`
	RefundMethod    string      `gorm:"size:20" json:"refund_method,omitempty"` // UPI or Bank
	RefundUPI       string      `gorm:"size:100" json:"refund_upi,omitempty"`
	RefundBank      BankDetails `gorm:"embedded;embeddedPrefix:refund_bank_" json:"refund_bank"`

	ProductEarning decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"product_earning"`
	EarningStatus  string          `gorm:"size:20;default:Pending" json:"earning_status"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
