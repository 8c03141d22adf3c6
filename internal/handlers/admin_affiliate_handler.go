package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wahu-store/internal/services"
)

// AdminAffiliateHandler serves the admin views over the affiliate
// program: accounts, attributed orders, earnings and payouts.
type AdminAffiliateHandler struct {
	affiliateService *services.AffiliateService
	orderService     *services.OrderService
	earningService   *services.EarningService
	withdrawService  *services.WithdrawService
}

func NewAdminAffiliateHandler(db *gorm.DB) *AdminAffiliateHandler {
	return &AdminAffiliateHandler{
		affiliateService: services.NewAffiliateService(db),
		orderService:     services.NewOrderService(db),
		earningService:   services.NewEarningService(db),
		withdrawService:  services.NewWithdrawService(db),
	}
}

// ListAffiliates returns all affiliate accounts
func (h *AdminAffiliateHandler) ListAffiliates(c *gin.Context) {
	affiliates, err := h.affiliateService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get affiliates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"affiliates": affiliates,
		"count":      len(affiliates),
	})
}

// ListAffiliatesWithEarnings returns accounts with lifetime earning and
// withdrawal totals
func (h *AdminAffiliateHandler) ListAffiliatesWithEarnings(c *gin.Context) {
	affiliates, err := h.affiliateService.ListAllWithEarnings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get affiliates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"affiliates": affiliates,
		"count":      len(affiliates),
	})
}

// OrdersByRef returns orders attributed to a referral code
func (h *AdminAffiliateHandler) OrdersByRef(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref is required"})
		return
	}

	orders, err := h.orderService.GetOrdersByRef(ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// RecentAffiliateOrders returns attributed orders from the last 48 hours
func (h *AdminAffiliateHandler) RecentAffiliateOrders(c *gin.Context) {
	orders, err := h.orderService.GetRecentOrders(48*time.Hour, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// ApproveEarning approves a pending line earning and credits the
// affiliate's balance. Approving an already approved line is a no-op.
func (h *AdminAffiliateHandler) ApproveEarning(c *gin.Context) {
	orderID, itemIndex, ok := earningParams(c)
	if !ok {
		return
	}

	decision, err := h.earningService.ApproveEarning(orderID, itemIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Earning approved"
	if decision.AlreadyDecided {
		message = "Earning already approved"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"amount":  decision.Amount,
	})
}

// RejectEarning rejects a pending line earning
func (h *AdminAffiliateHandler) RejectEarning(c *gin.Context) {
	orderID, itemIndex, ok := earningParams(c)
	if !ok {
		return
	}

	decision, err := h.earningService.RejectEarning(orderID, itemIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Earning rejected"
	if decision.AlreadyDecided {
		message = "Earning already rejected"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

func earningParams(c *gin.Context) (uint, int, bool) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, 0, false
	}

	var req struct {
		ItemIndex *int `json:"itemIndex" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}

	return uint(orderID), *req.ItemIndex, true
}

// SetCommissionStatus updates the order-level commission flag
func (h *AdminAffiliateHandler) SetCommissionStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.earningService.SetOrderCommissionStatus(uint(orderID), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// ListWithdrawals returns all withdrawal requests
func (h *AdminAffiliateHandler) ListWithdrawals(c *gin.Context) {
	requests, err := h.withdrawService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
		"count":    len(requests),
	})
}

// SetWithdrawalStatus approves or rejects a withdrawal request
func (h *AdminAffiliateHandler) SetWithdrawalStatus(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.withdrawService.SetStatus(uint(requestID), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"request": request,
	})
}
