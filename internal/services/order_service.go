package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wahu-store/internal/models"
)

// OrderService handles checkout, order listings, fulfillment status and
// customer return requests. Referral attribution happens here: a
// caller-supplied code is only stored after it resolves to a real
// affiliate, and each line gets the affiliate's level frozen onto it.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrderInput is the checkout payload
type PlaceOrderInput struct {
	Items         []OrderItemInput `json:"items" binding:"required"`
	Address       models.Address   `json:"address" binding:"required"`
	Total         decimal.Decimal  `json:"total"`
	Discount      decimal.Decimal  `json:"discount"`
	FinalAmount   decimal.Decimal  `json:"finalAmount"`
	PaymentMethod string           `json:"paymentMethod" binding:"required"`
	Ref           string           `json:"ref"`
}

// OrderItemInput is one line of the checkout payload
type OrderItemInput struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Title string          `json:"title"`
	Image string          `json:"image"`
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// PlaceOrder creates an order. The referral code is untrusted input: it
// is validated against real affiliate accounts and dropped silently when
// invalid, so checkout never fails on a stale code. When valid, every
// line is stamped with the affiliate's current level and a Pending
// earning, and the affiliate's lifetime order counter moves once.
func (s *OrderService) PlaceOrder(userID uint, input PlaceOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}

	// Validate the referral code before trusting it
	var affiliate *models.Affiliate
	var validRef *string
	if input.Ref != "" {
		var a models.Affiliate
		err := s.db.Where("affiliate_id = ?", input.Ref).First(&a).Error
		if err == nil {
			affiliate = &a
			validRef = &a.AffiliateID
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	address := input.Address
	address.FullAddress = buildFullAddress(address)

	order := models.Order{
		UserID:        userID,
		Ref:           validRef,
		Address:       address,
		Total:         input.Total,
		Discount:      input.Discount,
		FinalAmount:   input.FinalAmount,
		PaymentMethod: input.PaymentMethod,
		Status:        models.StatusPending,
	}

	for _, it := range input.Items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		item := models.OrderItem{
			ProductID:     it.ID,
			Name:          it.Name,
			Title:         it.Title,
			Image:         it.Image,
			Size:          it.Size,
			Price:         it.Price,
			Qty:           qty,
			ReturnStatus:  models.StatusPending,
			EarningStatus: models.StatusPending,
		}
		if affiliate != nil {
			level := affiliate.Level
			item.AffiliateLevelAtTime = &level
			item.ProductEarning = decimal.Zero
		}
		order.Items = append(order.Items, item)
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// One increment per attributed order, then bring the cached level
	// back in line with the new count.
	if affiliate != nil {
		if err := s.bumpAffiliateOrders(affiliate.AffiliateID); err != nil {
			log.Printf("Warning: failed to update affiliate %s after order %d: %v",
				affiliate.AffiliateID, order.ID, err)
		}
	}

	return &order, nil
}

// bumpAffiliateOrders atomically increments the lifetime order counter
// and recomputes the cached level from the new count.
func (s *OrderService) bumpAffiliateOrders(code string) error {
	if err := s.db.Model(&models.Affiliate{}).
		Where("affiliate_id = ?", code).
		Update("orders", gorm.Expr("orders + 1")).Error; err != nil {
		return err
	}

	var affiliate models.Affiliate
	if err := s.db.Where("affiliate_id = ?", code).First(&affiliate).Error; err != nil {
		return err
	}

	level := LevelForOrders(affiliate.Orders)
	if level == affiliate.Level {
		return nil
	}
	log.Printf("Affiliate %s leveled up to %s at %d orders", code, level, affiliate.Orders)
	return s.db.Model(&models.Affiliate{}).
		Where("affiliate_id = ?", code).
		Update("level", level).Error
}

func buildFullAddress(a models.Address) string {
	parts := []string{a.Street, a.Place, a.Road, a.City, a.State}
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	full := strings.Join(nonEmpty, ", ")
	if a.Pincode != "" {
		full = full + " - " + a.Pincode
	}
	return full
}

// GetByID loads an order with its lines
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetUserOrders lists the caller's own orders, newest first
func (s *OrderService) GetUserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAllOrders lists every order with buyer info, newest first
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersByRef lists orders attributed to one affiliate code
func (s *OrderService) GetOrdersByRef(ref string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("ref = ?", ref).
		Preload("Items").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetRecentOrders lists orders created within the window
func (s *OrderService) GetRecentOrders(window time.Duration, affiliateOnly bool) ([]models.Order, error) {
	since := time.Now().Add(-window)
	query := s.db.Where("created_at >= ?", since)
	if affiliateOnly {
		query = query.Where("ref IS NOT NULL")
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status and optional delivery date
func (s *OrderService) UpdateStatus(orderID uint, status string, deliveryDate *time.Time) (*models.Order, error) {
	updates := map[string]interface{}{"status": status}
	if deliveryDate != nil {
		updates["delivery_date"] = deliveryDate
	}

	result := s.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(orderID)
}

// ReturnRequestInput captures the refund destination for a return
type ReturnRequestInput struct {
	Reason       string             `json:"reason" binding:"required"`
	RefundMethod string             `json:"refundMethod"`
	UPI          string             `json:"upi"`
	Bank         models.BankDetails `json:"bank"`
}

// RequestReturn flags one order line for return. The flag is one-way;
// a second request on the same line is rejected. Earning approval for
// the line is a separate admin decision and is not touched here.
func (s *OrderService) RequestReturn(userID, orderID, itemID uint, input ReturnRequestInput) error {
	var order models.Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	var item models.OrderItem
	if err := s.db.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if item.ReturnRequested {
		return ErrReturnAlreadyOpen
	}

	now := time.Now()
	item.ReturnRequested = true
	item.ReturnReason = input.Reason
	item.ReturnDate = &now
	item.ReturnStatus = models.StatusPending
	item.RefundMethod = input.RefundMethod
	if input.RefundMethod == "UPI" {
		item.RefundUPI = input.UPI
		item.RefundBank = models.BankDetails{}
	} else if input.RefundMethod == "Bank" {
		item.RefundUPI = ""
		item.RefundBank = input.Bank
	}

	return s.db.Save(&item).Error
}

// DecideReturn approves or rejects a pending return on one line
func (s *OrderService) DecideReturn(orderID, itemID uint, approved bool) error {
	status := models.StatusRejected
	if approved {
		status = models.StatusApproved
	}

	result := s.db.Model(&models.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("return_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetReturns lists orders containing at least one return request,
// optionally limited to a recent window.
func (s *OrderService) GetReturns(window time.Duration) ([]models.Order, error) {
	query := s.db.
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.return_requested = ?", true)
	if window > 0 {
		query = query.Where("orders.created_at >= ?", time.Now().Add(-window))
	}

	var orders []models.Order
	if err := query.Distinct("orders.*").
		Preload("Items", "return_requested = ?", true).
		Preload("User").
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
