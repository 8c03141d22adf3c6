package services

import (
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// UserService handles user profile reads and updates
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAddress replaces the user's saved address
func (s *UserService) UpdateAddress(userID uint, address models.Address) error {
	result := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"address_name":    address.Name,
			"address_phone":   address.Phone,
			"address_email":   address.Email,
			"address_street":  address.Street,
			"address_road":    address.Road,
			"address_place":   address.Place,
			"address_pincode": address.Pincode,
			"address_city":    address.City,
			"address_state":   address.State,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
