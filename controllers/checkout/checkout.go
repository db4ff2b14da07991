package checkoutControllers

import (
	"log"
	"net/http"

	"github.com/aurelia-jewels/jewelry-api/controllers/httperr"
	orderControllers "github.com/aurelia-jewels/jewelry-api/controllers/order"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

type CreateSessionRequest struct {
	IdempotencyKey string                     `json:"idempotency_key" binding:"required"`
	Items          []services.ClaimedLineItem `json:"items" binding:"required"`
	FirstName      string                     `json:"first_name" binding:"required"`
	LastName       string                     `json:"last_name" binding:"required"`
	Email          string                     `json:"email" binding:"required,email"`
	Phone          string                     `json:"phone" binding:"required"`
	ShippingAddr   string                     `json:"shipping_address" binding:"required"`
}

// POST /checkout/session
// Revalidates the submitted cart snapshot and opens a payment session. Works
// for both authenticated users (identity from the JWT) and guests (identity
// from the supplied contact fields).
func CreateSessionHandler(checkout *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		buyer := services.BuyerInfo{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Phone:           req.Phone,
			ShippingAddress: req.ShippingAddr,
		}
		if v, exists := c.Get("user_id"); exists {
			if uid, ok := v.(string); ok && uid != "" {
				buyer.UserID = &uid
			}
		}

		guestSessionID := ""
		if buyer.UserID == nil {
			if sid, err := c.Cookie(sessionCookieName); err == nil {
				guestSessionID = sid
			} else {
				guestSessionID = c.GetHeader("X-Session-ID")
			}
		}

		result, err := checkout.CreateSession(c.Request.Context(), services.CheckoutRequest{
			IdempotencyKey: req.IdempotencyKey,
			Items:          req.Items,
			Buyer:          buyer,
			GuestSessionID: guestSessionID,
		})
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// WebhookDeps carries everything the payment confirmation callback touches.
type WebhookDeps struct {
	Stock    *services.StockService
	Orders   *services.OrderService
	Carts    *services.CartService
	Guest    *services.GuestCartService
	Sessions services.SessionStore
}

// POST /checkout/webhook
// The provider posts the transaction result here after the buyer finishes the
// hosted payment page. An approved transaction drives the stock reconciler and
// the order ledger; anything else is acknowledged without side effects.
func PaymentWebhookHandler(deps WebhookDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form"})
			return
		}

		sessionID := c.PostForm("tran_ref")
		tranStatus := c.PostForm("tran_status") // "A" = approved

		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing tran_ref"})
			return
		}
		if tranStatus != "A" {
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
			return
		}

		ctx := c.Request.Context()
		payload, err := deps.Sessions.LoadSessionPayload(ctx, sessionID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		if err := deps.Stock.ConfirmStock(ctx, payload.Items); err != nil {
			httperr.Respond(c, err)
			return
		}

		orderID, err := deps.Orders.PlaceOrder(ctx, payload.Items, payload.Buyer)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		// The originating cart and the session payload are cleanup, not part
		// of the order transaction; failures here must not fail the webhook.
		if payload.Buyer.UserID != nil {
			if err := deps.Carts.ClearCart(ctx, *payload.Buyer.UserID); err != nil {
				log.Printf("failed to clear cart for user %s: %v", *payload.Buyer.UserID, err)
			}
		} else if payload.GuestSessionID != "" {
			if err := deps.Guest.Clear(ctx, payload.GuestSessionID); err != nil {
				log.Printf("failed to clear guest cart %s: %v", payload.GuestSessionID, err)
			}
		}
		if err := deps.Sessions.DeleteSessionPayload(ctx, sessionID); err != nil {
			log.Printf("failed to delete session payload %s: %v", sessionID, err)
		}

		if order, err := deps.Orders.GetOrder(ctx, orderID); err == nil {
			orderControllers.BroadcastOrder(*order)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "order_id": orderID})
	}
}
