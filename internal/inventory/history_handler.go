package inventory

import (
	"time"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const historyLimit = 20

type MovementResponse struct {
	ID             uint   `json:"id"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
	UserEmail      string `json:"user_email"`
	CreatedAt      string `json:"created_at"`
}

// GET /api/products/:id/history
// The last movements of one product, newest first, with the actor's email.
func ProductHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		productID, err := c.ParamsInt("id")
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
		}

		var product models.Product
		if err := database.DB.
			Select("id", "name", "sku", "stock_quantity").
			Where("id = ? AND shop_id = ?", productID, shopID).
			First(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var movements []models.StockMovement
		if err := database.DB.
			Preload("User").
			Where("product_id = ? AND shop_id = ?", productID, shopID).
			Order("created_at DESC").
			Limit(historyLimit).
			Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load stock history")
		}

		res := make([]MovementResponse, 0, len(movements))
		for _, m := range movements {
			email := ""
			if m.User != nil {
				email = m.User.Email
			}
			res = append(res, MovementResponse{
				ID:             m.ID,
				QuantityChange: m.QuantityChange,
				Reason:         m.Reason,
				Notes:          m.Notes,
				UserEmail:      email,
				CreatedAt:      m.CreatedAt.Format(time.RFC3339),
			})
		}

		return c.JSON(fiber.Map{
			"product": fiber.Map{
				"id":             product.ID,
				"name":           product.Name,
				"sku":            product.SKU,
				"stock_quantity": product.StockQuantity,
			},
			"movements": res,
		})
	}
}
