package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Affiliate levels, ascending. Level is derived from the lifetime
// attributed order count and cached on the row.
const (
	LevelNewbie   = "Newbie"
	LevelBronze   = "Bronze"
	LevelSilver   = "Silver"
	LevelGold     = "Gold"
	LevelPlatinum = "Platinum"
	LevelDiamond  = "Diamond"
)

// Affiliate is one record per user who opted into the referral program
type Affiliate struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	User             *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AffiliateID      string          `gorm:"uniqueIndex;size:20;not null" json:"affiliate_id"` // shareable code
	Clicks           int64           `gorm:"default:0" json:"clicks"`
	Orders           int64           `gorm:"default:0" json:"orders"`
	CommissionEarned decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"commission_earned"`
	Level            string          `gorm:"size:20;default:Newbie" json:"level"`
	ReferralEarnings decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"referral_earnings"`
	PaymentMethod    string          `gorm:"size:20" json:"payment_method"` // UPI or Bank
	UPI              string          `gorm:"size:100" json:"upi"`
	Bank             BankDetails     `gorm:"embedded;embeddedPrefix:bank_" json:"bank"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

// BankDetails is a payout destination
type BankDetails struct {
	AccNo  string `gorm:"size:30" json:"acc_no"`
	IFSC   string `gorm:"size:20" json:"ifsc"`
	Holder string `gorm:"size:100" json:"holder"`
}
