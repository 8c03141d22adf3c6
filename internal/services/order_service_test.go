package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"wahu-store/internal/models"
)

func placeOrderInput(ref string) PlaceOrderInput {
	return PlaceOrderInput{
		Items: []OrderItemInput{
			{ID: "1", Name: "Oversized Tee", Size: "L", Price: decimal.NewFromInt(599), Qty: 2},
			{ID: "2", Name: "Hoodie", Size: "M", Price: decimal.NewFromInt(1299), Qty: 1},
		},
		Address:       models.Address{Name: "Asha", Phone: "9999999999", Street: "MG Road", City: "Kochi", State: "Kerala", Pincode: "682001"},
		Total:         decimal.NewFromInt(2497),
		FinalAmount:   decimal.NewFromInt(2497),
		PaymentMethod: "COD",
		Ref:           ref,
	}
}

func TestPlaceOrderInvalidRef(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	// A stale or mistyped code must not fail checkout
	order, err := service.PlaceOrder(1, placeOrderInput("AFF000000"))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.Ref != nil {
		t.Errorf("expected nil ref, got %s", *order.Ref)
	}
	for i, item := range order.Items {
		if item.AffiliateLevelAtTime != nil {
			t.Errorf("item %d: expected no level snapshot, got %s", i, *item.AffiliateLevelAtTime)
		}
	}
}

func TestPlaceOrderAttribution(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)
	createTestAffiliate(t, db, 2, "AFF200001")

	order, err := service.PlaceOrder(1, placeOrderInput("AFF200001"))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.Ref == nil || *order.Ref != "AFF200001" {
		t.Fatal("expected order attributed to AFF200001")
	}

	for i, item := range order.Items {
		if item.AffiliateLevelAtTime == nil || *item.AffiliateLevelAtTime != models.LevelNewbie {
			t.Errorf("item %d: expected Newbie level snapshot", i)
		}
		if item.EarningStatus != models.StatusPending {
			t.Errorf("item %d: expected Pending earning, got %s", i, item.EarningStatus)
		}
	}

	var affiliate models.Affiliate
	db.Where("affiliate_id = ?", "AFF200001").First(&affiliate)
	if affiliate.Orders != 1 {
		t.Errorf("expected 1 order on counter, got %d", affiliate.Orders)
	}
}

func TestPlaceOrderLevelTransition(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	affiliate := createTestAffiliate(t, db, 2, "AFF200002")
	db.Model(affiliate).Update("orders", 15)

	order, err := service.PlaceOrder(1, placeOrderInput("AFF200002"))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	var reloaded models.Affiliate
	db.Where("affiliate_id = ?", "AFF200002").First(&reloaded)
	if reloaded.Orders != 16 {
		t.Fatalf("expected 16 orders, got %d", reloaded.Orders)
	}
	if reloaded.Level != models.LevelBronze {
		t.Errorf("expected Bronze level, got %s", reloaded.Level)
	}

	// The crossing order itself still carries the pre-transition level
	for i, item := range order.Items {
		if item.AffiliateLevelAtTime == nil || *item.AffiliateLevelAtTime != models.LevelNewbie {
			t.Errorf("item %d: expected Newbie snapshot on the crossing order", i)
		}
	}
}

func TestPlaceOrderNoItems(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	input := placeOrderInput("")
	input.Items = nil
	_, err := service.PlaceOrder(1, input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRequestReturnOnce(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(1, placeOrderInput(""))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	itemID := order.Items[0].ID

	input := ReturnRequestInput{Reason: "wrong size", RefundMethod: "UPI", UPI: "asha@upi"}
	if err := service.RequestReturn(1, order.ID, itemID, input); err != nil {
		t.Fatalf("RequestReturn failed: %v", err)
	}

	err = service.RequestReturn(1, order.ID, itemID, input)
	if !errors.Is(err, ErrReturnAlreadyOpen) {
		t.Errorf("expected ErrReturnAlreadyOpen, got %v", err)
	}

	// Another user cannot open a return on this order
	err = service.RequestReturn(2, order.ID, order.Items[1].ID, input)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign order, got %v", err)
	}
}

func TestDecideReturn(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	order, err := service.PlaceOrder(1, placeOrderInput(""))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	itemID := order.Items[0].ID

	input := ReturnRequestInput{Reason: "damaged", RefundMethod: "Bank", Bank: models.BankDetails{AccNo: "123", IFSC: "HDFC0000001", Holder: "Asha"}}
	if err := service.RequestReturn(1, order.ID, itemID, input); err != nil {
		t.Fatalf("RequestReturn failed: %v", err)
	}

	if err := service.DecideReturn(order.ID, itemID, true); err != nil {
		t.Fatalf("DecideReturn failed: %v", err)
	}

	var item models.OrderItem
	db.First(&item, itemID)
	if item.ReturnStatus != models.StatusApproved {
		t.Errorf("expected Approved return, got %s", item.ReturnStatus)
	}
	if item.RefundBank.AccNo != "123" {
		t.Errorf("expected refund bank snapshot, got %q", item.RefundBank.AccNo)
	}

	if err := service.DecideReturn(order.ID, 99999, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}
