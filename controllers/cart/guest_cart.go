package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/aurelia-jewels/jewelry-api/controllers/httperr"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "session_id"

// guestSessionID reads the guest session cookie, falling back to the
// X-Session-ID header for cookie-less clients.
func guestSessionID(c *gin.Context) string {
	if sessionID, err := c.Cookie(sessionCookieName); err == nil && sessionID != "" {
		return sessionID
	}
	return c.GetHeader("X-Session-ID")
}

// ensureGuestSessionID returns the caller's session id, minting one and
// setting the cookie on the first guest cart mutation.
func ensureGuestSessionID(c *gin.Context) string {
	if sessionID := guestSessionID(c); sessionID != "" {
		return sessionID
	}
	sessionID := uuid.NewString()
	maxAge := int(services.DefaultGuestCartTTL.Seconds())
	c.SetCookie(sessionCookieName, sessionID, maxAge, "/", "", false, true)
	return sessionID
}

func clearGuestSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

// POST /guest/cart
func AddGuestCartItem(guest *services.GuestCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		sessionID := ensureGuestSessionID(c)
		if err := guest.AddItem(c.Request.Context(), sessionID, input.ProductID, input.Quantity); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to guest cart", "session_id": sessionID})
	}
}

// DELETE /guest/cart/:product_id
func DeleteGuestCartItem(guest *services.GuestCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := guestSessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		if err := guest.RemoveItem(c.Request.Context(), sessionID, uint(productID)); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart item deleted"})
	}
}

// DELETE /guest/cart
func ClearGuestCart(guest *services.GuestCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := guestSessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		if err := guest.Clear(c.Request.Context(), sessionID); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart cleared"})
	}
}

// GET /guest/cart
func GetGuestCart(guest *services.GuestCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := guestSessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusOK, []services.CartView{})
			return
		}
		views, err := guest.ListItems(c.Request.Context(), sessionID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}
