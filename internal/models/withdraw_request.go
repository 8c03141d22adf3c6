package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawRequest converts accrued commission into a payout request.
// Amount and payout details are snapshotted at creation; admin only
// moves Status afterwards. Rows are never deleted.
type WithdrawRequest struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AffiliateID string          `gorm:"size:20;not null;index" json:"affiliate_id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderID     *uint           `json:"order_id,omitempty"` // set for single-item withdrawals
	ItemID      *uint           `json:"item_id,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`

	PaymentMethod string      `gorm:"size:20" json:"payment_method"`
	UPI           string      `gorm:"size:100" json:"upi"`
	Bank          BankDetails `gorm:"embedded;embeddedPrefix:bank_" json:"bank"`

	Status    string    `gorm:"size:20;default:Pending;index" json:"status"` // Pending, Approved, Rejected
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (WithdrawRequest) TableName() string {
	return "withdraw_requests"
}
