package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

func placeAttributedOrder(t *testing.T, db *gorm.DB, code string) *models.Order {
	t.Helper()

	order, err := NewOrderService(db).PlaceOrder(1, placeOrderInput(code))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	return order
}

func TestApproveEarningIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service := NewEarningService(db)
	createTestAffiliate(t, db, 2, "AFF300001")
	order := placeAttributedOrder(t, db, "AFF300001")

	// First line has qty 2, Newbie rate 16
	decision, err := service.ApproveEarning(order.ID, 0)
	if err != nil {
		t.Fatalf("ApproveEarning failed: %v", err)
	}
	if decision.AlreadyDecided {
		t.Error("expected fresh decision")
	}
	want := decimal.NewFromInt(32)
	if !decision.Amount.Equal(want) {
		t.Errorf("expected amount %s, got %s", want, decision.Amount)
	}

	// Retry reports the existing state and credits nothing
	decision, err = service.ApproveEarning(order.ID, 0)
	if err != nil {
		t.Fatalf("ApproveEarning retry failed: %v", err)
	}
	if !decision.AlreadyDecided {
		t.Error("expected retry to report already decided")
	}

	var affiliate models.Affiliate
	db.Where("affiliate_id = ?", "AFF300001").First(&affiliate)
	if !affiliate.CommissionEarned.Equal(want) {
		t.Errorf("expected balance %s after retry, got %s", want, affiliate.CommissionEarned)
	}

	var item models.OrderItem
	db.Where("order_id = ?", order.ID).Order("id ASC").First(&item)
	if item.EarningStatus != models.StatusApproved {
		t.Errorf("expected Approved earning, got %s", item.EarningStatus)
	}
	if !item.ProductEarning.Equal(want) {
		t.Errorf("expected product earning %s, got %s", want, item.ProductEarning)
	}
}

func TestApproveEarningUsesSnapshotLevel(t *testing.T) {
	db := setupTestDB(t)
	service := NewEarningService(db)
	affiliate := createTestAffiliate(t, db, 2, "AFF300002")
	order := placeAttributedOrder(t, db, "AFF300002")

	// The affiliate levels up before the admin approves
	db.Model(affiliate).Update("level", models.LevelGold)

	decision, err := service.ApproveEarning(order.ID, 1)
	if err != nil {
		t.Fatalf("ApproveEarning failed: %v", err)
	}

	// Qty 1 at the Newbie rate frozen on the line, not the Gold rate
	want := decimal.NewFromInt(16)
	if !decision.Amount.Equal(want) {
		t.Errorf("expected snapshot-rate amount %s, got %s", want, decision.Amount)
	}
}

func TestApproveEarningUnattributedOrder(t *testing.T) {
	db := setupTestDB(t)
	service := NewEarningService(db)
	order := placeAttributedOrder(t, db, "")

	_, err := service.ApproveEarning(order.ID, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApproveEarningIndexOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	service := NewEarningService(db)
	createTestAffiliate(t, db, 2, "AFF300003")
	order := placeAttributedOrder(t, db, "AFF300003")

	if _, err := service.ApproveEarning(order.ID, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for index 5, got %v", err)
	}
	if _, err := service.ApproveEarning(order.ID, -1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for index -1, got %v", err)
	}
	if _, err := service.ApproveEarning(99999, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing order, got %v", err)
	}
}

func TestRejectEarningIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service := NewEarningService(db)
	createTestAffiliate(t, db, 2, "AFF300004")
	order := placeAttributedOrder(t, db, "AFF300004")

	decision, err := service.RejectEarning(order.ID, 0)
	if err != nil {
		t.Fatalf("RejectEarning failed: %v", err)
	}
	if decision.AlreadyDecided {
		t.Error("expected fresh decision")
	}

	decision, err = service.RejectEarning(order.ID, 0)
	if err != nil {
		t.Fatalf("RejectEarning retry failed: %v", err)
	}
	if !decision.AlreadyDecided {
		t.Error("expected retry to report already decided")
	}

	// Rejection moves no money
	var affiliate models.Affiliate
	db.Where("affiliate_id = ?", "AFF300004").First(&affiliate)
	if !affiliate.CommissionEarned.IsZero() {
		t.Errorf("expected zero balance, got %s", affiliate.CommissionEarned)
	}
}

func TestSetOrderCommissionStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewEarningService(db)
	createTestAffiliate(t, db, 2, "AFF300005")
	order := placeAttributedOrder(t, db, "AFF300005")

	updated, err := service.SetOrderCommissionStatus(order.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("SetOrderCommissionStatus failed: %v", err)
	}
	if updated.CommissionStatus != models.StatusApproved {
		t.Errorf("expected Approved, got %s", updated.CommissionStatus)
	}

	if _, err := service.SetOrderCommissionStatus(order.ID, "Paid"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad status, got %v", err)
	}
	if _, err := service.SetOrderCommissionStatus(99999, models.StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
