package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one product+size in a user's cart. Ref carries the
// affiliate code the item was clicked through, so checkout can attribute
// the order later.
type CartItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	UserID    uint            `gorm:"not null;index:idx_cart_user_product,unique" json:"-"`
	ProductID string          `gorm:"size:40;not null;index:idx_cart_user_product,unique" json:"id"`
	Size      string          `gorm:"size:20;not null;index:idx_cart_user_product,unique" json:"size"`
	Name      string          `gorm:"not null" json:"name"`
	Title     string          `json:"title"`
	Image     string          `gorm:"size:500;not null" json:"image"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Qty       int             `gorm:"not null;default:1" json:"qty"`
	Ref       *string         `gorm:"size:20" json:"ref,omitempty"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
