package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wahu-store/internal/models"
)

// setupTestDB opens a named in-memory database so every test gets a
// fresh schema. cache=shared keeps the DB alive across the connections
// gorm opens internally.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Contact{},
		&models.Order{},
		&models.OrderItem{},
		&models.Affiliate{},
		&models.ClickLog{},
		&models.WithdrawRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Named shared-memory DBs outlive the test unless cleared
	t.Cleanup(func() {
		for _, table := range []string{
			"withdraw_requests", "click_logs", "affiliates",
			"order_items", "orders", "contacts",
			"wishlist_items", "cart_items", "products", "users",
		} {
			db.Exec("DELETE FROM " + table)
		}
	})

	return db
}

func createTestAffiliate(t *testing.T, db *gorm.DB, userID uint, code string) *models.Affiliate {
	t.Helper()

	affiliate := models.Affiliate{
		UserID:      userID,
		AffiliateID: code,
		Level:       models.LevelNewbie,
	}
	if err := db.Create(&affiliate).Error; err != nil {
		t.Fatalf("failed to create affiliate: %v", err)
	}
	return &affiliate
}
