package services

import (
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// CartService manages per-user cart items. Each item keeps the affiliate
// ref it was clicked through so checkout can attribute the order.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetItems lists the user's cart
func (s *CartService) GetItems(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItems merges items into the cart. An existing (product, size) entry
// gets its quantity replaced; a non-empty incoming ref overwrites the
// stored one so the latest referral wins.
func (s *CartService) AddItems(userID uint, items []models.CartItem) ([]models.CartItem, error) {
	for _, item := range items {
		item.UserID = userID

		var existing models.CartItem
		err := s.db.Where("user_id = ? AND product_id = ? AND size = ?",
			userID, item.ProductID, item.Size).First(&existing).Error

		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&item).Error; err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		existing.Qty = item.Qty
		if item.Ref != nil && *item.Ref != "" {
			existing.Ref = item.Ref
		}
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
	}

	return s.GetItems(userID)
}

// RemoveItem deletes one (product, size) entry from the cart
func (s *CartService) RemoveItem(userID uint, productID, size string) error {
	result := s.db.Where("user_id = ? AND product_id = ? AND size = ?",
		userID, productID, size).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties the user's cart, used after a successful checkout
func (s *CartService) Clear(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
