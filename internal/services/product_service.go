package services

import (
	"fmt"

	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// ProductService handles catalog CRUD. Media files live on the external
// media host; this service only stores their URLs.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns products, optionally filtered by category option,
// newest first.
func (s *ProductService) List(option string) ([]models.Product, error) {
	query := s.db.Order("created_at DESC")
	if option != "" {
		query = query.Where("option = ?", option)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	return s.db.Create(product).Error
}

// Update overwrites a product's mutable fields
func (s *ProductService) Update(productID uint, updated *models.Product) (*models.Product, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	product.Name = updated.Name
	product.Title = updated.Title
	product.Price = updated.Price
	product.OriginalPrice = updated.OriginalPrice
	product.Description = updated.Description
	product.Sizes = updated.Sizes
	product.Option = updated.Option
	if updated.ImageURL != "" {
		product.ImageURL = updated.ImageURL
		product.ImagePublicID = updated.ImagePublicID
	}
	if updated.MoreImages != nil {
		product.MoreImages = updated.MoreImages
	}
	if updated.VideoURL != "" {
		product.VideoURL = updated.VideoURL
		product.VideoPublicID = updated.VideoPublicID
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(productID uint) error {
	result := s.db.Delete(&models.Product{}, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
