package models

import (
	"time"
)

// ClickLog records one referral click. Rows expire after 30 days; the
// click reaper job deletes anything past ExpireAt. Ref may point at a
// code with no matching affiliate; the click is still logged.
type ClickLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ref       string    `gorm:"size:20;not null;index" json:"ref"` // affiliate code
	IP        string    `gorm:"size:45" json:"ip"`
	Device    string    `gorm:"size:20" json:"device"` // Mobile or Desktop
	City      string    `gorm:"size:100;default:Unknown;index" json:"city"`
	ProductID string    `gorm:"size:40;index" json:"product_id"`
	UserID    *uint     `json:"user_id,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	ExpireAt  time.Time `gorm:"index" json:"expire_at"`
}

func (ClickLog) TableName() string {
	return "click_logs"
}
