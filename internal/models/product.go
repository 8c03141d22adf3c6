package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents an item in the store catalog
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"originalprice"`
	Description   string          `gorm:"type:text" json:"description"`
	Sizes         pq.StringArray  `gorm:"type:text[]" json:"sizes"`
	Option        string          `gorm:"size:50;index" json:"option"` // category: bags, dress, electronics, ...
	ImageURL      string          `gorm:"size:500" json:"image_url"`
	ImagePublicID string          `gorm:"size:255" json:"image_public_id"`
	MoreImages    MediaList       `gorm:"type:jsonb" json:"more_images"`
	VideoURL      string          `gorm:"size:500" json:"video_url"`
	VideoPublicID string          `gorm:"size:255" json:"video_public_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}
