package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wahu-store/internal/auth"
	"wahu-store/internal/models"
	"wahu-store/internal/services"
)

type AffiliateHandler struct {
	affiliateService *services.AffiliateService
	clickService     *services.ClickService
	withdrawService  *services.WithdrawService
}

func NewAffiliateHandler(db *gorm.DB) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService: services.NewAffiliateService(db),
		clickService:     services.NewClickService(db),
		withdrawService:  services.NewWithdrawService(db),
	}
}

// Activate opens an affiliate account for the current user. Calling it
// again returns the existing account.
func (h *AffiliateHandler) Activate(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	affiliate, created, err := h.affiliateService.Activate(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Affiliate account already active"
	status := http.StatusOK
	if created {
		message = "Affiliate account activated"
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{
		"success":   true,
		"message":   message,
		"affiliate": affiliate,
	})
}

// SavePaymentMethod stores the payout destination (UPI or bank)
func (h *AffiliateHandler) SavePaymentMethod(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Method string             `json:"method" binding:"required"`
		UPI    string             `json:"upi"`
		Bank   models.BankDetails `json:"bank"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.affiliateService.SavePaymentMethod(userID, req.Method, req.UPI, req.Bank); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment method saved",
	})
}

// Me returns the current user's affiliate account with lifetime
// withdrawal total
func (h *AffiliateHandler) Me(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	affiliate, err := h.affiliateService.GetByUserID(userID)
	if err != nil {
		// Not having opted in yet is a normal state, not a failure
		if errors.Is(err, services.ErrNotActivated) {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"activated": false,
			})
			return
		}
		respondError(c, err)
		return
	}

	withdrawn, err := h.affiliateService.TotalWithdrawn(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"activated":      true,
		"affiliate":      affiliate,
		"totalWithdrawn": withdrawn,
	})
}

// RecordClick logs an affiliate link click. Public endpoint; the caller
// is the storefront page the shared link landed on.
func (h *AffiliateHandler) RecordClick(c *gin.Context) {
	var req struct {
		Ref       string `json:"ref" binding:"required"`
		ProductID string `json:"productId"`
		City      string `json:"city"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	counted, err := h.clickService.RecordClick(req.Ref, c.ClientIP(), c.GetHeader("User-Agent"), req.ProductID, req.City)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"counted": counted,
	})
}

// Withdraw requests a payout of the full commission balance
func (h *AffiliateHandler) Withdraw(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.withdrawService.RequestWithdrawal(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"request": request,
	})
}

// WithdrawHistory returns the user's withdrawal requests
func (h *AffiliateHandler) WithdrawHistory(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	history, err := h.withdrawService.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": history,
		"count":    len(history),
	})
}

// DailyEarnings returns approved commission per day for charting
func (h *AffiliateHandler) DailyEarnings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	earnings, err := h.affiliateService.GetDailyEarnings(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"earnings": earnings,
	})
}

// Analytics returns click and conversion statistics for the dashboard
func (h *AffiliateHandler) Analytics(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	analytics, err := h.affiliateService.GetAnalytics(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"analytics": analytics,
	})
}

// Orders returns orders attributed to the user's affiliate code
func (h *AffiliateHandler) Orders(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.affiliateService.GetOrders(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}
