package search

import (
	"fmt"
	"strings"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	minQueryLength = 2
	productLimit   = 5
	categoryLimit  = 3
)

type Result struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // "product" or "category"
	Subtitle string `json:"subtitle"`
}

// GET /api/search?q=
func GlobalSearchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		query := strings.TrimSpace(c.Query("q"))
		if len(query) < minQueryLength {
			return c.JSON(fiber.Map{"results": []Result{}})
		}
		term := "%" + query + "%"

		var products []models.Product
		if err := database.DB.
			Where("shop_id = ? AND (name ILIKE ? OR sku ILIKE ? OR description ILIKE ?)", shopID, term, term, term).
			Order("name asc").
			Limit(productLimit).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Search failed")
		}

		var categories []models.Category
		if err := database.DB.
			Where("shop_id = ? AND name ILIKE ?", shopID, term).
			Order("name asc").
			Limit(categoryLimit).
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Search failed")
		}

		results := make([]Result, 0, len(products)+len(categories))
		for _, p := range products {
			results = append(results, Result{
				ID:       p.ID,
				Name:     p.Name,
				Type:     "product",
				Subtitle: fmt.Sprintf("SKU: %s • Stock: %d", p.SKU, p.StockQuantity),
			})
		}
		for _, cat := range categories {
			results = append(results, Result{
				ID:       cat.ID,
				Name:     cat.Name,
				Type:     "category",
				Subtitle: "Category",
			})
		}

		return c.JSON(fiber.Map{"results": results})
	}
}
