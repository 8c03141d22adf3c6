package services

import (
	"fmt"

	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// ContactService stores contact form messages
type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Create stores a new contact message
func (s *ContactService) Create(contact *models.Contact) error {
	if contact.Email == "" || contact.Message == "" {
		return fmt.Errorf("%w: email and message required", ErrInvalidInput)
	}
	return s.db.Create(contact).Error
}

// List returns all messages, newest first
func (s *ContactService) List() ([]models.Contact, error) {
	var messages []models.Contact
	if err := s.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes one message
func (s *ContactService) Delete(contactID uint) error {
	result := s.db.Delete(&models.Contact{}, contactID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
