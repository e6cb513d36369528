package inventory

import (
	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/gofiber/fiber/v2"
)

type productCSVRow struct {
	Name     string `csv:"Name"`
	SKU      string `csv:"SKU"`
	Price    string `csv:"Price"`
	Stock    int    `csv:"Stock"`
	Category string `csv:"Category"`
}

// GET /api/products/export
func ExportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.
			Preload("Category").
			Where("shop_id = ?", shopID).
			Order("name asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
		}

		if len(products) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No products to export")
		}

		rows := make([]productCSVRow, 0, len(products))
		for _, p := range products {
			category := "Uncategorized"
			if p.Category != nil {
				category = p.Category.Name
			}
			rows = append(rows, productCSVRow{
				Name:     p.Name,
				SKU:      p.SKU,
				Price:    p.Price.StringFixed(2),
				Stock:    p.StockQuantity,
				Category: category,
			})
		}

		csvContent, err := gocsv.MarshalString(&rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build CSV")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
		return c.SendString(csvContent)
	}
}
