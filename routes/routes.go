package routes

import (
	"github.com/aurelia-jewels/jewelry-api/config"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
)

// Deps carries the wired services into the route groups. main.go builds the
// singletons; nothing below this line reaches for globals.
type Deps struct {
	Config   config.Config
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Guest    *services.GuestCartService
	Checkout *services.CheckoutService
	Stock    *services.StockService
	Orders   *services.OrderService
	Sessions services.SessionStore
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupProductRoutes(r, deps)
	SetupCartRoutes(r, deps)
	SetupCheckoutRoutes(r, deps)
	SetupOrderRoutes(r, deps)
}
