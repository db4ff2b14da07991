package routes

import (
	checkoutControllers "github.com/aurelia-jewels/jewelry-api/controllers/checkout"
	"github.com/aurelia-jewels/jewelry-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCheckoutRoutes(r *gin.Engine, deps Deps) {
	checkout := r.Group("/checkout")
	{
		// Session creation serves guests and authenticated users alike.
		checkout.POST("/session", middleware.OptionalAuth, checkoutControllers.CreateSessionHandler(deps.Checkout))

		// Provider callback after the hosted payment page completes.
		checkout.POST("/webhook",
			middleware.PaymentWebhookAuth(deps.Config.Payment),
			checkoutControllers.PaymentWebhookHandler(checkoutControllers.WebhookDeps{
				Stock:    deps.Stock,
				Orders:   deps.Orders,
				Carts:    deps.Carts,
				Guest:    deps.Guest,
				Sessions: deps.Sessions,
			}))
	}
}
