package services

import (
	"errors"
	"testing"
	"time"

	"wahu-store/internal/models"
)

const mobileUA = "Mozilla/5.0 (Linux; Android 14) Mobile Safari/537.36"

func TestRecordClickDedupe(t *testing.T) {
	db := setupTestDB(t)
	service := NewClickService(db)
	createTestAffiliate(t, db, 1, "AFF100001")

	counted, err := service.RecordClick("AFF100001", "1.2.3.4", mobileUA, "42", "Kochi")
	if err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}
	if !counted {
		t.Fatal("expected first click to count")
	}

	// Same tuple inside the window is a duplicate
	counted, err = service.RecordClick("AFF100001", "1.2.3.4", mobileUA, "42", "Kochi")
	if err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}
	if counted {
		t.Error("expected duplicate click not to count")
	}

	// Different product breaks the tuple
	counted, err = service.RecordClick("AFF100001", "1.2.3.4", mobileUA, "43", "Kochi")
	if err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}
	if !counted {
		t.Error("expected click on another product to count")
	}

	var affiliate models.Affiliate
	if err := db.Where("affiliate_id = ?", "AFF100001").First(&affiliate).Error; err != nil {
		t.Fatalf("failed to load affiliate: %v", err)
	}
	if affiliate.Clicks != 2 {
		t.Errorf("expected 2 clicks, got %d", affiliate.Clicks)
	}

	var logs int64
	db.Model(&models.ClickLog{}).Count(&logs)
	if logs != 2 {
		t.Errorf("expected 2 click logs, got %d", logs)
	}
}

func TestRecordClickAfterDedupeWindow(t *testing.T) {
	db := setupTestDB(t)
	service := NewClickService(db)
	createTestAffiliate(t, db, 1, "AFF100002")

	if _, err := service.RecordClick("AFF100002", "1.2.3.4", mobileUA, "42", ""); err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}

	// Age the log past the window
	backdated := time.Now().Add(-25 * time.Hour)
	if err := db.Model(&models.ClickLog{}).
		Where("ref = ?", "AFF100002").
		Update("created_at", backdated).Error; err != nil {
		t.Fatalf("failed to backdate log: %v", err)
	}

	counted, err := service.RecordClick("AFF100002", "1.2.3.4", mobileUA, "42", "")
	if err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}
	if !counted {
		t.Error("expected click after the window to count again")
	}

	var affiliate models.Affiliate
	db.Where("affiliate_id = ?", "AFF100002").First(&affiliate)
	if affiliate.Clicks != 2 {
		t.Errorf("expected 2 clicks, got %d", affiliate.Clicks)
	}
}

func TestRecordClickUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	service := NewClickService(db)

	counted, err := service.RecordClick("AFF999999", "1.2.3.4", "curl/8.0", "42", "")
	if err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}
	if !counted {
		t.Error("expected click on unknown code to be logged")
	}

	var click models.ClickLog
	if err := db.Where("ref = ?", "AFF999999").First(&click).Error; err != nil {
		t.Fatalf("expected click log row: %v", err)
	}
	if click.Device != "Desktop" {
		t.Errorf("expected Desktop device, got %s", click.Device)
	}
	if click.City != "Unknown" {
		t.Errorf("expected Unknown city, got %s", click.City)
	}
}

func TestRecordClickMissingRef(t *testing.T) {
	db := setupTestDB(t)
	service := NewClickService(db)

	_, err := service.RecordClick("", "1.2.3.4", mobileUA, "42", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	service := NewClickService(db)

	expired := models.ClickLog{Ref: "AFF100003", IP: "1.1.1.1", Device: "Desktop", City: "Unknown", ExpireAt: time.Now().Add(-time.Hour)}
	live := models.ClickLog{Ref: "AFF100003", IP: "2.2.2.2", Device: "Desktop", City: "Unknown", ExpireAt: time.Now().Add(time.Hour)}
	db.Create(&expired)
	db.Create(&live)

	deleted, err := service.DeleteExpired()
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	var remaining int64
	db.Model(&models.ClickLog{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("expected 1 remaining log, got %d", remaining)
	}
}

func TestDeviceFromUserAgent(t *testing.T) {
	if got := DeviceFromUserAgent(mobileUA); got != "Mobile" {
		t.Errorf("expected Mobile, got %s", got)
	}
	if got := DeviceFromUserAgent("Mozilla/5.0 (X11; Linux x86_64)"); got != "Desktop" {
		t.Errorf("expected Desktop, got %s", got)
	}
}
