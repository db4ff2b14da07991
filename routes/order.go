package routes

import (
	orderControllers "github.com/aurelia-jewels/jewelry-api/controllers/order"
	"github.com/aurelia-jewels/jewelry-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	{
		// Buyer-facing order lookup
		orders.GET("/:orderID", orderControllers.GetOrderHandler(deps.Orders))

		// Orders for a specific user (JWT-protected)
		orders.GET("/user/:userID", middleware.RequireAuth, orderControllers.GetUserOrdersHandler(deps.Orders))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Update order status (back office)
		orders.PUT("/:orderID/status", middleware.ValidateAPIKey, orderControllers.UpdateOrderStatusHandler(deps.Orders))
	}
}
