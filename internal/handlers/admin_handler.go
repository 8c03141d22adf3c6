package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wahu-store/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		adminService: services.NewAdminService(db),
	}
}

// Analytics returns store-wide sales statistics
func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.adminService.GetAnalytics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"analytics": analytics,
	})
}
