package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"wahu-store/internal/models"
)

const (
	clickDedupeWindow  = 24 * time.Hour
	clickLogRetention  = 30 * 24 * time.Hour
	deviceClassMobile  = "Mobile"
	deviceClassDesktop = "Desktop"
)

// ClickService records referral clicks and keeps the per-affiliate
// click counter in sync with the log.
type ClickService struct {
	db *gorm.DB
}

func NewClickService(db *gorm.DB) *ClickService {
	return &ClickService{db: db}
}

// DeviceFromUserAgent classifies a user agent as Mobile or Desktop
func DeviceFromUserAgent(userAgent string) string {
	if strings.Contains(userAgent, "Mobile") {
		return deviceClassMobile
	}
	return deviceClassDesktop
}

// RecordClick logs a referral click and increments the affiliate's click
// counter. Repeated clicks from the same (ref, ip, device, product) tuple
// within 24 hours are reported as already recorded and do not count.
// The counter increment is a no-op when no affiliate holds the code;
// the click is still logged for later reconciliation.
func (s *ClickService) RecordClick(ref, ip, userAgent, productID, city string) (bool, error) {
	if ref == "" {
		return false, fmt.Errorf("%w: missing ref", ErrInvalidInput)
	}

	device := DeviceFromUserAgent(userAgent)
	since := time.Now().Add(-clickDedupeWindow)

	var existing models.ClickLog
	err := s.db.Where("ref = ? AND ip = ? AND device = ? AND product_id = ? AND created_at >= ?",
		ref, ip, device, productID, since).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	if city == "" {
		city = "Unknown"
	}

	// The log row is the source of truth; write it before the counter
	// so a failed increment can be reconciled from events.
	click := models.ClickLog{
		Ref:       ref,
		IP:        ip,
		Device:    device,
		City:      city,
		ProductID: productID,
		ExpireAt:  time.Now().Add(clickLogRetention),
	}
	if err := s.db.Create(&click).Error; err != nil {
		return false, fmt.Errorf("failed to log click: %w", err)
	}

	result := s.db.Model(&models.Affiliate{}).
		Where("affiliate_id = ?", ref).
		Update("clicks", gorm.Expr("clicks + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		log.Printf("Click logged for unknown affiliate code %s", ref)
	}

	return true, nil
}

// DeleteExpired removes click logs past their retention window and
// returns the number of rows deleted.
func (s *ClickService) DeleteExpired() (int64, error) {
	result := s.db.Where("expire_at < ?", time.Now()).Delete(&models.ClickLog{})
	return result.RowsAffected, result.Error
}
