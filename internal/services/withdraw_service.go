package services

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// MinimumWithdrawal is the smallest balance an affiliate can withdraw
var MinimumWithdrawal = decimal.NewFromInt(100)

// WithdrawService converts accrued commission into withdrawal requests
// and lets admins move requests through their lifecycle.
type WithdrawService struct {
	db *gorm.DB
}

func NewWithdrawService(db *gorm.DB) *WithdrawService {
	return &WithdrawService{db: db}
}

// RequestWithdrawal snapshots the caller's full balance and payout
// details into a new request and zeroes the balance. Both writes run
// in one transaction; a crash cannot leave a request without the
// matching balance reset.
func (s *WithdrawService) RequestWithdrawal(userID uint) (*models.WithdrawRequest, error) {
	var affiliate models.Affiliate
	if err := s.db.Where("user_id = ?", userID).First(&affiliate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotActivated
		}
		return nil, err
	}

	if affiliate.PaymentMethod == "" {
		return nil, ErrPaymentMethodMissing
	}
	if affiliate.CommissionEarned.LessThan(MinimumWithdrawal) {
		return nil, ErrBelowMinimum
	}

	request := models.WithdrawRequest{
		AffiliateID:   affiliate.AffiliateID,
		UserID:        userID,
		Amount:        affiliate.CommissionEarned,
		PaymentMethod: affiliate.PaymentMethod,
		UPI:           affiliate.UPI,
		Bank:          affiliate.Bank,
		Status:        models.StatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return tx.Model(&models.Affiliate{}).
			Where("id = ?", affiliate.ID).
			Update("commission_earned", decimal.Zero).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	log.Printf("Withdrawal requested: affiliate %s amount %s", affiliate.AffiliateID, request.Amount)
	return &request, nil
}

// History lists the caller's withdrawal requests, newest first
func (s *WithdrawService) History(userID uint) ([]models.WithdrawRequest, error) {
	var requests []models.WithdrawRequest
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListAll returns every withdrawal request with the owning user
func (s *WithdrawService) ListAll() ([]models.WithdrawRequest, error) {
	var requests []models.WithdrawRequest
	if err := s.db.Preload("User").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// SetStatus overwrites a request's status. A direct overwrite only:
// the balance already moved into the request at creation, so approval
// and rejection have no further side effects.
func (s *WithdrawService) SetStatus(requestID uint, status string) (*models.WithdrawRequest, error) {
	if status != models.StatusApproved && status != models.StatusRejected && status != models.StatusPending {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	result := s.db.Model(&models.WithdrawRequest{}).
		Where("id = ?", requestID).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var request models.WithdrawRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}
