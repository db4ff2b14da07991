package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/aurelia-jewels/jewelry-api/controllers/httperr"
	"github.com/aurelia-jewels/jewelry-api/models"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
)

// GET /orders/:orderID
func GetOrderHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		order, err := orders.GetOrder(c.Request.Context(), uint(id))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}
		list, err := orders.GetUserOrders(c.Request.Context(), userID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /orders/:orderID/status
func UpdateOrderStatusHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := orders.UpdateStatus(c.Request.Context(), uint(id), models.OrderStatus(req.Status)); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}
