package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WishlistItem is one saved product for a user
type WishlistItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	UserID    uint            `gorm:"not null;index:idx_wishlist_user_product,unique" json:"-"`
	ProductID string          `gorm:"size:40;not null;index:idx_wishlist_user_product,unique" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Image     string          `gorm:"size:500" json:"image"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
