package routes

import (
	cartControllers "github.com/aurelia-jewels/jewelry-api/controllers/cart"
	"github.com/aurelia-jewels/jewelry-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	// Authenticated cart (JWT-protected)
	user := r.Group("/user/cart")
	user.Use(middleware.RequireAuth)
	{
		user.GET("", cartControllers.GetCart(deps.Carts))
		user.POST("", cartControllers.AddCartItem(deps.Carts))
		user.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.Carts))
		user.POST("/merge", cartControllers.MergeGuestCart(deps.Carts, deps.Guest))
	}

	// Guest cart (session cookie)
	guest := r.Group("/guest/cart")
	{
		guest.GET("", cartControllers.GetGuestCart(deps.Guest))
		guest.POST("", cartControllers.AddGuestCartItem(deps.Guest))
		guest.DELETE("", cartControllers.ClearGuestCart(deps.Guest))
		guest.DELETE("/:product_id", cartControllers.DeleteGuestCartItem(deps.Guest))
	}
}
