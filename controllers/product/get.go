package productControllers

import (
	"net/http"
	"strconv"

	"github.com/aurelia-jewels/jewelry-api/controllers/httperr"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
)

// GetProductByID returns a single product with its categories.
// URL param: /products/:id
func GetProductByID(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		product, err := catalog.GetProduct(c.Request.Context(), uint(id))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetAllProducts returns the full catalog.
func GetAllProducts(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context())
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
