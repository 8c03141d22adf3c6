package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// DashboardService builds the admin affiliate dashboard. Everything here
// is a read-only projection over affiliates, orders, clicks and
// withdrawals; nothing mutates.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary is the headline affiliate-program numbers
type Summary struct {
	TotalAffiliates int64             `json:"total_affiliates"`
	Levels          map[string]int64  `json:"levels"`
	TopAllTime      *models.Affiliate `json:"top_all_time"`
}

// GetSummary counts affiliates per level and finds the top lifetime earner
func (s *DashboardService) GetSummary() (*Summary, error) {
	summary := &Summary{Levels: map[string]int64{}}

	if err := s.db.Model(&models.Affiliate{}).Count(&summary.TotalAffiliates).Error; err != nil {
		return nil, err
	}

	type levelCount struct {
		Level string
		Count int64
	}
	var counts []levelCount
	if err := s.db.Model(&models.Affiliate{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		summary.Levels[c.Level] = c.Count
	}

	var top models.Affiliate
	err := s.db.Order("commission_earned DESC").First(&top).Error
	if err == nil {
		summary.TopAllTime = &top
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return summary, nil
}

// RangeEarnings names an affiliate and what they earned inside a window
type RangeEarnings struct {
	AffiliateID   string          `json:"affiliate_id"`
	UserID        uint            `json:"user_id"`
	Level         string          `json:"level"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// TopEarnings reports the best earner over the last 24h, 7d and 30d
type TopEarnings struct {
	Top24h *RangeEarnings `json:"top24h"`
	Top7d  *RangeEarnings `json:"top7d"`
	Top30d *RangeEarnings `json:"top30d"`
}

// GetTopEarnings finds the top earner per window. Earnings inside a
// window are the approved per-line amounts on orders placed in it plus
// withdrawal requests created in it, so the numbers agree with the
// money the ledger actually credits.
func (s *DashboardService) GetTopEarnings() (*TopEarnings, error) {
	top24, err := s.topInRange(24 * time.Hour)
	if err != nil {
		return nil, err
	}
	top7d, err := s.topInRange(7 * 24 * time.Hour)
	if err != nil {
		return nil, err
	}
	top30d, err := s.topInRange(30 * 24 * time.Hour)
	if err != nil {
		return nil, err
	}
	return &TopEarnings{Top24h: top24, Top7d: top7d, Top30d: top30d}, nil
}

func (s *DashboardService) topInRange(window time.Duration) (*RangeEarnings, error) {
	since := time.Now().Add(-window)

	var affiliates []models.Affiliate
	if err := s.db.Find(&affiliates).Error; err != nil {
		return nil, err
	}

	var best *RangeEarnings
	for _, a := range affiliates {
		var fromOrders decimal.Decimal
		row := s.db.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.ref = ? AND orders.created_at >= ? AND order_items.earning_status = ?",
				a.AffiliateID, since, models.StatusApproved).
			Select("COALESCE(SUM(order_items.product_earning), 0)").Row()
		if err := row.Scan(&fromOrders); err != nil {
			return nil, err
		}

		var fromWithdrawals decimal.Decimal
		row = s.db.Model(&models.WithdrawRequest{}).
			Where("user_id = ? AND created_at >= ?", a.UserID, since).
			Select("COALESCE(SUM(amount), 0)").Row()
		if err := row.Scan(&fromWithdrawals); err != nil {
			return nil, err
		}

		total := fromOrders.Add(fromWithdrawals)
		if best == nil || total.GreaterThan(best.TotalEarnings) {
			best = &RangeEarnings{
				AffiliateID:   a.AffiliateID,
				UserID:        a.UserID,
				Level:         a.Level,
				TotalEarnings: total,
			}
		}
	}
	return best, nil
}

// BestProduct is a product ranked by attributed sales
type BestProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Count     int64  `json:"count"`
}

// GetBestProducts ranks products by how often they appear in attributed orders
func (s *DashboardService) GetBestProducts(limit int) ([]BestProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	var best []BestProduct
	if err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.ref IS NOT NULL").
		Select("order_items.product_id AS product_id, MIN(order_items.name) AS name, MIN(order_items.image) AS image, COUNT(*) AS count").
		Group("order_items.product_id").
		Order("count DESC").
		Limit(limit).
		Scan(&best).Error; err != nil {
		return nil, err
	}
	return best, nil
}

// DailyOrderSplit is one day's affiliate vs normal order counts
type DailyOrderSplit struct {
	Day             string `json:"day"`
	AffiliateOrders int64  `json:"affiliate_orders"`
	NormalOrders    int64  `json:"normal_orders"`
}

// GetOrdersGraph splits the last 30 days of orders into attributed and
// normal counts per day.
func (s *DashboardService) GetOrdersGraph() ([]DailyOrderSplit, error) {
	since := time.Now().Add(-30 * 24 * time.Hour)

	var orders []models.Order
	if err := s.db.Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	byDay := map[string]*DailyOrderSplit{}
	var days []string
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		split, ok := byDay[day]
		if !ok {
			split = &DailyOrderSplit{Day: day}
			byDay[day] = split
			days = append(days, day)
		}
		if o.Ref != nil {
			split.AffiliateOrders++
		} else {
			split.NormalOrders++
		}
	}

	result := make([]DailyOrderSplit, 0, len(days))
	for _, day := range days {
		result = append(result, *byDay[day])
	}
	return result, nil
}
