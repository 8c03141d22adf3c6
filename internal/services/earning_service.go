package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// EarningService drives the per-line earning state machine. Transitions
// are admin-only and idempotent: re-applying one reports the existing
// state instead of crediting twice.
type EarningService struct {
	db *gorm.DB
}

func NewEarningService(db *gorm.DB) *EarningService {
	return &EarningService{db: db}
}

// EarningDecision reports the outcome of an approve/reject call
type EarningDecision struct {
	AlreadyDecided bool
	Amount         decimal.Decimal
}

// itemByIndex resolves a line by its position in the order, lines
// sorted by primary key.
func (s *EarningService) itemByIndex(orderID uint, index int) (*models.Order, *models.OrderItem, error) {
	var order models.Order
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if index < 0 || index >= len(order.Items) {
		return nil, nil, fmt.Errorf("%w: item index %d out of range", ErrInvalidInput, index)
	}
	return &order, &order.Items[index], nil
}

// ApproveEarning computes the commission for one order line from the
// level snapshot taken at order time and credits it to the affiliate.
// The line update and the balance credit run in one transaction, and
// an already-approved line short-circuits, so retries never double-credit.
func (s *EarningService) ApproveEarning(orderID uint, itemIndex int) (*EarningDecision, error) {
	order, item, err := s.itemByIndex(orderID, itemIndex)
	if err != nil {
		return nil, err
	}
	if order.Ref == nil {
		return nil, fmt.Errorf("%w: order %d has no affiliate attribution", ErrInvalidInput, orderID)
	}

	var affiliate models.Affiliate
	if err := s.db.Where("affiliate_id = ?", *order.Ref).First(&affiliate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if item.EarningStatus == models.StatusApproved {
		return &EarningDecision{AlreadyDecided: true, Amount: item.ProductEarning}, nil
	}

	// Always the snapshot level, never the affiliate's current one
	rate := CommissionForLevel(derefLevel(item.AffiliateLevelAtTime))
	commission := rate.Mul(decimal.NewFromInt(int64(item.Qty)))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"product_earning": commission,
				"earning_status":  models.StatusApproved,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Affiliate{}).
			Where("id = ?", affiliate.ID).
			Update("commission_earned", gorm.Expr("commission_earned + ?", commission)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve earning: %w", err)
	}

	return &EarningDecision{Amount: commission}, nil
}

// RejectEarning marks one line's earning as rejected. ProductEarning is
// left at its last value and no balance moves.
func (s *EarningService) RejectEarning(orderID uint, itemIndex int) (*EarningDecision, error) {
	_, item, err := s.itemByIndex(orderID, itemIndex)
	if err != nil {
		return nil, err
	}

	if item.EarningStatus == models.StatusRejected {
		return &EarningDecision{AlreadyDecided: true, Amount: item.ProductEarning}, nil
	}

	if err := s.db.Model(&models.OrderItem{}).
		Where("id = ?", item.ID).
		Update("earning_status", models.StatusRejected).Error; err != nil {
		return nil, err
	}

	return &EarningDecision{Amount: item.ProductEarning}, nil
}

// SetOrderCommissionStatus overrides the whole-order commission flag
func (s *EarningService) SetOrderCommissionStatus(orderID uint, status string) (*models.Order, error) {
	if status != models.StatusApproved && status != models.StatusRejected && status != models.StatusPending {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	result := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("commission_status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func derefLevel(level *string) string {
	if level == nil {
		return ""
	}
	return *level
}
