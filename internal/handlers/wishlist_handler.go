package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wahu-store/internal/auth"
	"wahu-store/internal/models"
	"wahu-store/internal/services"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: services.NewWishlistService(db),
	}
}

// Get returns the user's wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.wishlistService.GetItems(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"wishlist": items,
		"count":    len(items),
	})
}

// Toggle adds the product if absent, removes it if present
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var item models.WishlistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.wishlistService.Toggle(userID, item)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Removed from wishlist"
	if added {
		message = "Added to wishlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"added":   added,
		"message": message,
	})
}

// Remove deletes a product from the wishlist
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.wishlistService.Remove(userID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed",
	})
}
