package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/aurelia-jewels/jewelry-api/controllers/httperr"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

func userID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// POST /user/cart
func AddCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := carts.AddItem(c.Request.Context(), uid, input.ProductID, input.Quantity); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		if err := carts.RemoveItem(c.Request.Context(), uid, uint(productID)); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// GET /user/cart
func GetCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		views, err := carts.ListItems(c.Request.Context(), uid)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// POST /user/cart/merge
// Folds the guest session's cart into the authenticated user's cart after
// login. Quantities are summed when both carts hold the same product.
func MergeGuestCart(carts *services.CartService, guest *services.GuestCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		sessionID := guestSessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusOK, gin.H{"message": "No guest cart to merge"})
			return
		}
		if err := carts.MergeGuestCart(c.Request.Context(), guest, sessionID, uid); err != nil {
			httperr.Respond(c, err)
			return
		}
		clearGuestSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart merged"})
	}
}
