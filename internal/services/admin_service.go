package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// AdminService aggregates store-wide analytics for the admin panel
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// WindowStats is order count and revenue inside a time window
type WindowStats struct {
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopItem is a product ranked by quantity sold or returned
type TopItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// StoreAnalytics is the admin analytics payload
type StoreAnalytics struct {
	Last24h             WindowStats `json:"last24h"`
	LastWeek            WindowStats `json:"last_week"`
	LastMonth           WindowStats `json:"last_month"`
	TotalOrders         int64       `json:"total_orders"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	Returns             int64       `json:"returns"`
	TopProducts         []TopItem   `json:"top_products"`
	TopReturnedProducts []TopItem   `json:"top_returned_products"`
	TotalUsers          int64       `json:"total_users"`
}

// GetAnalytics builds revenue, return and catalog performance numbers
func (s *AdminService) GetAnalytics() (*StoreAnalytics, error) {
	now := time.Now()
	a := &StoreAnalytics{}

	var err error
	if a.Last24h, err = s.windowStats(now.Add(-24 * time.Hour)); err != nil {
		return nil, err
	}
	if a.LastWeek, err = s.windowStats(now.Add(-7 * 24 * time.Hour)); err != nil {
		return nil, err
	}
	if a.LastMonth, err = s.windowStats(now.Add(-30 * 24 * time.Hour)); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Order{}).Count(&a.TotalOrders).Error; err != nil {
		return nil, err
	}
	row := s.db.Model(&models.Order{}).Select("COALESCE(SUM(final_amount), 0)").Row()
	if err := row.Scan(&a.TotalRevenue); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.OrderItem{}).
		Where("return_requested = ?", true).
		Count(&a.Returns).Error; err != nil {
		return nil, err
	}

	if a.TopProducts, err = s.topItems(false, 10); err != nil {
		return nil, err
	}
	if a.TopReturnedProducts, err = s.topItems(true, 10); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.User{}).Count(&a.TotalUsers).Error; err != nil {
		return nil, err
	}

	return a, nil
}

func (s *AdminService) windowStats(since time.Time) (WindowStats, error) {
	var stats WindowStats
	if err := s.db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Count(&stats.Orders).Error; err != nil {
		return stats, err
	}
	row := s.db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(final_amount), 0)").Row()
	if err := row.Scan(&stats.Revenue); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *AdminService) topItems(returnedOnly bool, limit int) ([]TopItem, error) {
	query := s.db.Model(&models.OrderItem{})
	if returnedOnly {
		query = query.Where("return_requested = ?", true)
	}

	var items []TopItem
	if err := query.
		Select("product_id, MIN(name) AS name, SUM(qty) AS quantity").
		Group("product_id").
		Order("quantity DESC").
		Limit(limit).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
