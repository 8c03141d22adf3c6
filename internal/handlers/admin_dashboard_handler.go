package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wahu-store/internal/services"
)

type AdminDashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewAdminDashboardHandler(db *gorm.DB) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// Summary returns affiliate program headline numbers
func (h *AdminDashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// TopEarnings returns per-affiliate earnings over day, week and month
func (h *AdminDashboardHandler) TopEarnings(c *gin.Context) {
	earnings, err := h.dashboardService.GetTopEarnings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get earnings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"earnings": earnings,
	})
}

// BestProducts returns the most sold products through affiliate links
func (h *AdminDashboardHandler) BestProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	products, err := h.dashboardService.GetBestProducts(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// OrdersGraph returns the 30-day affiliate versus direct order split
func (h *AdminDashboardHandler) OrdersGraph(c *gin.Context) {
	graph, err := h.dashboardService.GetOrdersGraph()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get graph"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"graph":   graph,
	})
}
