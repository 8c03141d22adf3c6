package services

import (
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// WishlistService manages per-user saved products
type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// GetItems lists the user's wishlist
func (s *WishlistService) GetItems(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := s.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Toggle adds the product if absent, removes it if present. Returns
// true when the product ended up in the wishlist.
func (s *WishlistService) Toggle(userID uint, item models.WishlistItem) (bool, error) {
	var existing models.WishlistItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, item.ProductID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		item.UserID = userID
		if err := s.db.Create(&item).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.db.Delete(&existing).Error; err != nil {
		return false, err
	}
	return false, nil
}

// Remove deletes one product from the wishlist
func (s *WishlistService) Remove(userID uint, productID string) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
