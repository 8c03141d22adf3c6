package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// AffiliateService manages affiliate accounts: opt-in, payout details
// and the read-side views an affiliate sees on their dashboard.
type AffiliateService struct {
	db *gorm.DB
}

func NewAffiliateService(db *gorm.DB) *AffiliateService {
	return &AffiliateService{db: db}
}

// Activate opts a user into the affiliate program. Calling it twice is a
// no-op returning the existing account.
func (s *AffiliateService) Activate(userID uint) (*models.Affiliate, bool, error) {
	var affiliate models.Affiliate
	err := s.db.Where("user_id = ?", userID).First(&affiliate).Error
	if err == nil {
		return &affiliate, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	code, err := s.generateAffiliateCode()
	if err != nil {
		return nil, false, err
	}

	affiliate = models.Affiliate{
		UserID:      userID,
		AffiliateID: code,
		Level:       models.LevelNewbie,
	}
	if err := s.db.Create(&affiliate).Error; err != nil {
		return nil, false, fmt.Errorf("failed to activate affiliate: %w", err)
	}

	log.Printf("Affiliate activated: user %d code %s", userID, code)
	return &affiliate, true, nil
}

// generateAffiliateCode produces a unique AFF-prefixed 6-digit code
func (s *AffiliateService) generateAffiliateCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("AFF%06d", n.Int64()+100000)

		var count int64
		if err := s.db.Model(&models.Affiliate{}).Where("affiliate_id = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique affiliate code")
}

// SavePaymentMethod stores the payout destination for withdrawals
func (s *AffiliateService) SavePaymentMethod(userID uint, method, upi string, bank models.BankDetails) error {
	result := s.db.Model(&models.Affiliate{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"payment_method": method,
			"upi":            upi,
			"bank_acc_no":    bank.AccNo,
			"bank_ifsc":      bank.IFSC,
			"bank_holder":    bank.Holder,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotActivated
	}
	return nil
}

// GetByUserID returns the affiliate account for a user
func (s *AffiliateService) GetByUserID(userID uint) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := s.db.Where("user_id = ?", userID).First(&affiliate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotActivated
		}
		return nil, err
	}
	return &affiliate, nil
}

// GetByCode returns the affiliate account holding a shareable code
func (s *AffiliateService) GetByCode(code string) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := s.db.Where("affiliate_id = ?", code).First(&affiliate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &affiliate, nil
}

// TotalWithdrawn sums a user's approved withdrawal requests
func (s *AffiliateService) TotalWithdrawn(userID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.Model(&models.WithdrawRequest{}).
		Where("user_id = ? AND status = ?", userID, models.StatusApproved).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// GetOrders lists orders attributed to the caller's affiliate code,
// newest first. A user without an account gets an empty list.
func (s *AffiliateService) GetOrders(userID uint) ([]models.Order, error) {
	affiliate, err := s.GetByUserID(userID)
	if err != nil {
		if err == ErrNotActivated {
			return []models.Order{}, nil
		}
		return nil, err
	}

	var orders []models.Order
	if err := s.db.Where("ref = ?", affiliate.AffiliateID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// DailyEarnings aggregates approved per-line earnings by calendar day
type DailyEarnings struct {
	Days    []string          `json:"days"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// GetDailyEarnings builds the earnings-over-time graph for an affiliate
func (s *AffiliateService) GetDailyEarnings(userID uint) (*DailyEarnings, error) {
	affiliate, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := s.db.Where("ref = ?", affiliate.AffiliateID).
		Preload("Items").
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	byDay := map[string]decimal.Decimal{}
	var days []string
	for _, order := range orders {
		day := order.CreatedAt.Format("2006-01-02")
		for _, item := range order.Items {
			if item.EarningStatus != models.StatusApproved {
				continue
			}
			if _, seen := byDay[day]; !seen {
				days = append(days, day)
			}
			byDay[day] = byDay[day].Add(item.ProductEarning)
		}
	}

	result := &DailyEarnings{Days: days}
	for _, day := range days {
		result.Amounts = append(result.Amounts, byDay[day])
	}
	return result, nil
}

// Analytics is the affiliate's own performance breakdown
type Analytics struct {
	Clicks         int64            `json:"clicks"`
	UniqueIPs      int64            `json:"unique_ips"`
	RepeatClicks   int64            `json:"repeat_clicks"`
	Orders         int64            `json:"orders"`
	ConversionRate string           `json:"conversion_rate"`
	DeviceStats    map[string]int64 `json:"device_stats"`
	CityStats      map[string]int64 `json:"city_stats"`
	ProductStats   []ProductCount   `json:"product_stats"`
}

// ProductCount pairs a product with how often it appears in attributed orders
type ProductCount struct {
	ProductID string `json:"product_id"`
	Count     int64  `json:"count"`
}

// GetAnalytics computes click/conversion analytics for an affiliate
func (s *AffiliateService) GetAnalytics(userID uint) (*Analytics, error) {
	affiliate, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	ref := affiliate.AffiliateID

	a := &Analytics{
		DeviceStats: map[string]int64{},
		CityStats:   map[string]int64{},
	}

	if err := s.db.Model(&models.ClickLog{}).Where("ref = ?", ref).Count(&a.Clicks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ClickLog{}).Where("ref = ?", ref).
		Distinct("ip").Count(&a.UniqueIPs).Error; err != nil {
		return nil, err
	}
	a.RepeatClicks = a.Clicks - a.UniqueIPs

	if err := s.db.Model(&models.Order{}).Where("ref = ?", ref).Count(&a.Orders).Error; err != nil {
		return nil, err
	}
	if a.Clicks == 0 {
		a.ConversionRate = "0.00"
	} else {
		a.ConversionRate = fmt.Sprintf("%.2f", float64(a.Orders)/float64(a.Clicks)*100)
	}

	type groupCount struct {
		Key   string
		Count int64
	}

	var devices []groupCount
	if err := s.db.Model(&models.ClickLog{}).Where("ref = ?", ref).
		Select("device AS key, COUNT(*) AS count").Group("device").Scan(&devices).Error; err != nil {
		return nil, err
	}
	for _, d := range devices {
		a.DeviceStats[d.Key] = d.Count
	}

	var cities []groupCount
	if err := s.db.Model(&models.ClickLog{}).Where("ref = ?", ref).
		Select("city AS key, COUNT(*) AS count").Group("city").Scan(&cities).Error; err != nil {
		return nil, err
	}
	for _, c := range cities {
		a.CityStats[c.Key] = c.Count
	}

	if err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.ref = ?", ref).
		Select("order_items.product_id AS product_id, COUNT(*) AS count").
		Group("order_items.product_id").
		Order("count DESC").
		Scan(&a.ProductStats).Error; err != nil {
		return nil, err
	}

	return a, nil
}

// ListAll returns every affiliate account with the owning user preloaded
func (s *AffiliateService) ListAll() ([]models.Affiliate, error) {
	var affiliates []models.Affiliate
	if err := s.db.Preload("User").Find(&affiliates).Error; err != nil {
		return nil, err
	}
	return affiliates, nil
}

// AffiliateEarnings decorates an account with withdrawal-aware totals
type AffiliateEarnings struct {
	models.Affiliate
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
	TotalEarning   decimal.Decimal `json:"total_earning"`
}

// ListAllWithEarnings returns every account with lifetime earning totals
// (current balance plus everything already moved into withdrawal requests).
func (s *AffiliateService) ListAllWithEarnings() ([]AffiliateEarnings, error) {
	affiliates, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	type withdrawTotal struct {
		UserID uint
		Total  decimal.Decimal
	}
	var totals []withdrawTotal
	if err := s.db.Model(&models.WithdrawRequest{}).
		Select("user_id, COALESCE(SUM(amount), 0) AS total").
		Group("user_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	withdrawn := map[uint]decimal.Decimal{}
	for _, t := range totals {
		withdrawn[t.UserID] = t.Total
	}

	result := make([]AffiliateEarnings, 0, len(affiliates))
	for _, a := range affiliates {
		w := withdrawn[a.UserID]
		result = append(result, AffiliateEarnings{
			Affiliate:      a,
			TotalWithdrawn: w,
			TotalEarning:   a.CommissionEarned.Add(w),
		})
	}
	return result, nil
}
