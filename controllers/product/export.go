package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aurelia-jewels/jewelry-api/controllers/httperr"
	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// ExportProductsExcel writes the catalog as an xlsx workbook, one product per
// row, for back-office reporting.
// GET /products/export
func ExportProductsExcel(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context())
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Excel file"})
			return
		}

		header := sheet.AddRow()
		for _, title := range []string{"ID", "Seller", "Name", "Price", "Stock", "Material", "Color", "Categories"} {
			header.AddCell().SetString(title)
		}

		for _, p := range products {
			names := make([]string, 0, len(p.Categories))
			for _, cat := range p.Categories {
				names = append(names, cat.Name)
			}
			row := sheet.AddRow()
			row.AddCell().SetString(strconv.FormatUint(uint64(p.ID), 10))
			row.AddCell().SetString(p.SellerID)
			row.AddCell().SetString(p.Name)
			row.AddCell().SetString(p.Price.StringFixed(2))
			row.AddCell().SetString(strconv.Itoa(p.StockQuantity))
			row.AddCell().SetString(p.Material)
			row.AddCell().SetString(p.Color)
			row.AddCell().SetString(strings.Join(names, ", "))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
