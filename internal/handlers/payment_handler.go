package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wahu-store/internal/payment"
)

type PaymentHandler struct {
	razorpay *payment.Client
}

func NewPaymentHandler(razorpay *payment.Client) *PaymentHandler {
	return &PaymentHandler{razorpay: razorpay}
}

// CreateOrder opens a Razorpay payment intent for the given amount
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.razorpay.CreateOrder(req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
