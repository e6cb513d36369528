package dashboard

import (
	"time"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"
	"shopstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const recentMovementLimit = 5

type RecentMovement struct {
	ID             uint   `json:"id"`
	ProductName    string `json:"product_name"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
	UserEmail      string `json:"user_email"`
	CreatedAt      string `json:"created_at"`
}

// GET /api/dashboard
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var (
			totalProducts   int64
			totalCategories int64
			lowStockCount   int64
			totalValue      decimal.Decimal
		)

		if err := database.DB.Model(&models.Product{}).
			Where("shop_id = ?", shopID).
			Count(&totalProducts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
		}
		if err := database.DB.Model(&models.Category{}).
			Where("shop_id = ?", shopID).
			Count(&totalCategories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
		}
		if err := database.DB.Model(&models.Product{}).
			Where("shop_id = ? AND stock_quantity < ?", shopID, stock.LowStockThreshold).
			Count(&lowStockCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
		}
		if err := database.DB.Model(&models.Product{}).
			Where("shop_id = ?", shopID).
			Select("COALESCE(SUM(price * stock_quantity), 0)").
			Scan(&totalValue).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
		}

		var movements []models.StockMovement
		if err := database.DB.
			Preload("Product").
			Preload("User").
			Where("shop_id = ?", shopID).
			Order("created_at DESC").
			Limit(recentMovementLimit).
			Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
		}

		recent := make([]RecentMovement, 0, len(movements))
		for _, m := range movements {
			rm := RecentMovement{
				ID:             m.ID,
				QuantityChange: m.QuantityChange,
				Reason:         m.Reason,
				CreatedAt:      m.CreatedAt.Format(time.RFC3339),
			}
			if m.Product != nil {
				rm.ProductName = m.Product.Name
			}
			if m.User != nil {
				rm.UserEmail = m.User.Email
			}
			recent = append(recent, rm)
		}

		return c.JSON(fiber.Map{
			"stats": fiber.Map{
				"total_products":   totalProducts,
				"total_value":      totalValue.StringFixed(2),
				"total_categories": totalCategories,
				"low_stock_count":  lowStockCount,
			},
			"recent_activity": recent,
		})
	}
}
