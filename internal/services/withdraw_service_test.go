package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"wahu-store/internal/models"
)

func TestRequestWithdrawalNotActivated(t *testing.T) {
	db := setupTestDB(t)
	service := NewWithdrawService(db)

	_, err := service.RequestWithdrawal(1)
	if !errors.Is(err, ErrNotActivated) {
		t.Errorf("expected ErrNotActivated, got %v", err)
	}
}

func TestRequestWithdrawalNoPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	service := NewWithdrawService(db)

	affiliate := createTestAffiliate(t, db, 1, "AFF400001")
	db.Model(affiliate).Update("commission_earned", decimal.NewFromInt(500))

	_, err := service.RequestWithdrawal(1)
	if !errors.Is(err, ErrPaymentMethodMissing) {
		t.Errorf("expected ErrPaymentMethodMissing, got %v", err)
	}
}

func TestRequestWithdrawalBelowMinimum(t *testing.T) {
	db := setupTestDB(t)
	service := NewWithdrawService(db)

	affiliate := createTestAffiliate(t, db, 1, "AFF400002")
	db.Model(affiliate).Updates(map[string]interface{}{
		"payment_method":    "UPI",
		"upi":               "asha@upi",
		"commission_earned": decimal.NewFromInt(99),
	})

	_, err := service.RequestWithdrawal(1)
	if !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("expected ErrBelowMinimum, got %v", err)
	}

	// A refused request must not touch the balance
	var reloaded models.Affiliate
	db.Where("affiliate_id = ?", "AFF400002").First(&reloaded)
	if !reloaded.CommissionEarned.Equal(decimal.NewFromInt(99)) {
		t.Errorf("expected balance 99, got %s", reloaded.CommissionEarned)
	}
}

func TestRequestWithdrawalSnapshotsAndZeroes(t *testing.T) {
	db := setupTestDB(t)
	service := NewWithdrawService(db)

	affiliate := createTestAffiliate(t, db, 1, "AFF400003")
	db.Model(affiliate).Updates(map[string]interface{}{
		"payment_method":    "Bank",
		"bank_acc_no":       "1234567890",
		"bank_ifsc":         "HDFC0000001",
		"bank_holder":       "Asha",
		"commission_earned": decimal.NewFromInt(150),
	})

	request, err := service.RequestWithdrawal(1)
	if err != nil {
		t.Fatalf("RequestWithdrawal failed: %v", err)
	}

	if !request.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected amount 150, got %s", request.Amount)
	}
	if request.Status != models.StatusPending {
		t.Errorf("expected Pending status, got %s", request.Status)
	}
	if request.PaymentMethod != "Bank" || request.Bank.AccNo != "1234567890" {
		t.Error("expected payout details snapshotted onto the request")
	}

	var reloaded models.Affiliate
	db.Where("affiliate_id = ?", "AFF400003").First(&reloaded)
	if !reloaded.CommissionEarned.IsZero() {
		t.Errorf("expected zeroed balance, got %s", reloaded.CommissionEarned)
	}

	// Balance is gone, so an immediate second request is refused
	if _, err := service.RequestWithdrawal(1); !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("expected ErrBelowMinimum on second request, got %v", err)
	}
}

func TestSetWithdrawalStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewWithdrawService(db)

	affiliate := createTestAffiliate(t, db, 1, "AFF400004")
	db.Model(affiliate).Updates(map[string]interface{}{
		"payment_method":    "UPI",
		"upi":               "asha@upi",
		"commission_earned": decimal.NewFromInt(200),
	})

	request, err := service.RequestWithdrawal(1)
	if err != nil {
		t.Fatalf("RequestWithdrawal failed: %v", err)
	}

	updated, err := service.SetStatus(request.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Errorf("expected Approved, got %s", updated.Status)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected amount unchanged at 200, got %s", updated.Amount)
	}

	if _, err := service.SetStatus(request.ID, "Settled"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad status, got %v", err)
	}
	if _, err := service.SetStatus(99999, models.StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWithdrawHistoryOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewWithdrawService(db)

	affiliate := createTestAffiliate(t, db, 1, "AFF400005")
	db.Model(affiliate).Updates(map[string]interface{}{
		"payment_method": "UPI",
		"upi":            "asha@upi",
	})

	for _, amount := range []int64{120, 340} {
		db.Model(affiliate).Update("commission_earned", decimal.NewFromInt(amount))
		if _, err := service.RequestWithdrawal(1); err != nil {
			t.Fatalf("RequestWithdrawal failed: %v", err)
		}
	}

	history, err := service.History(1)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(history))
	}
}
