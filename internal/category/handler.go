package category

import (
	"errors"
	"fmt"
	"strings"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var categories []models.Category
		if err := database.DB.
			Where("shop_id = ?", shopID).
			Order("name asc").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load categories")
		}

		return c.JSON(categories)
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		category := models.Category{ShopID: shopID, Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "A category with this name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create category")
		}

		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		categoryID, err := c.ParamsInt("id")
		if err != nil || categoryID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category ID")
		}

		var category models.Category
		if err := database.DB.
			Where("id = ? AND shop_id = ?", categoryID, shopID).
			First(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		// Products keep their rows; they just become uncategorized.
		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).
				Where("category_id = ? AND shop_id = ?", categoryID, shopID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete category")
		}

		return c.JSON(fiber.Map{"message": fmt.Sprintf("Category %q deleted", category.Name)})
	}
}
