package routes

import (
	productControllers "github.com/aurelia-jewels/jewelry-api/controllers/product"
	"github.com/aurelia-jewels/jewelry-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(r *gin.Engine, deps Deps) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetAllProducts(deps.Catalog))
		products.GET("/:id", productControllers.GetProductByID(deps.Catalog))

		// Back-office catalog report
		products.GET("/export", middleware.ValidateAPIKey, productControllers.ExportProductsExcel(deps.Catalog))
	}
}
