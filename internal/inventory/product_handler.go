package inventory

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"
	"shopstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bounded retry for SKU unique-index collisions on create.
const maxSKUAttempts = 3

type ProductResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	CategoryID        *uint  `json:"category_id"`
	CategoryName      string `json:"category_name"`
	Price             string `json:"price"`
	StockQuantity     int    `json:"stock_quantity"`
	LowStockAlertSent bool   `json:"low_stock_alert_sent"`
	Description       string `json:"description"`
	ImageURL          string `json:"image_url"`
	CreatedAt         string `json:"created_at"`
}

type CreateProductRequest struct {
	Name          string  `json:"name"`
	CategoryID    *uint   `json:"category_id"`
	Price         *string `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"`
	CategoryID  *uint   `json:"category_id"`
	Price       *string `json:"price"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

func toProductResponse(p models.Product, categoryName string) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		CategoryID:        p.CategoryID,
		CategoryName:      categoryName,
		Price:             p.Price.StringFixed(2),
		StockQuantity:     p.StockQuantity,
		LowStockAlertSent: p.LowStockAlertSent,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
}

func parsePrice(raw *string) (decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil || price.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must be a non-negative number")
	}
	return price.Round(2), nil
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.
			Preload("Category").
			Where("shop_id = ?", shopID).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			name := ""
			if p.Category != nil {
				name = p.Category.Name
			}
			res = append(res, toProductResponse(p, name))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
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
			Preload("Category").
			Where("id = ? AND shop_id = ?", productID, shopID).
			First(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		name := ""
		if product.Category != nil {
			name = product.Category.Name
		}
		return c.JSON(toProductResponse(product, name))
	}
}

// POST /api/products
// The SKU is generated server-side; on a unique-index collision the insert is
// retried with a fresh SKU and a small randomized backoff. Initial stock is
// recorded as a best-effort movement after the product row has committed.
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}
		if body.StockQuantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Initial stock cannot be negative")
		}

		price, err := parsePrice(body.Price)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.
				Where("id = ? AND shop_id = ?", *body.CategoryID, shopID).
				First(&category).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
		}

		product := models.Product{
			ShopID:        shopID,
			CategoryID:    body.CategoryID,
			Name:          body.Name,
			Price:         price,
			StockQuantity: body.StockQuantity,
			Description:   strings.TrimSpace(body.Description),
			ImageURL:      strings.TrimSpace(body.ImageURL),
		}

		for attempt := 0; ; attempt++ {
			product.SKU = GenerateSKU(body.Name)
			err = database.DB.Create(&product).Error
			if err == nil {
				break
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create product")
			}
			if attempt+1 >= maxSKUAttempts {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate a unique SKU, please try again")
			}
			log.Printf("SKU collision on %q, retrying (attempt %d)", product.SKU, attempt+1)
			time.Sleep(time.Duration(rand.IntN(100*(attempt+1))) * time.Millisecond)
		}

		// The first audit row is cosmetic if it fails: the product itself has
		// already committed.
		if body.StockQuantity > 0 {
			stock.RecordMovementBestEffort(stock.Movement{
				ShopID:         shopID,
				ProductID:      product.ID,
				QuantityChange: body.StockQuantity,
				Reason:         "Initial Stock",
				UserID:         &userID,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product, ""))
	}
}

// PUT /api/products/:id
// Price and metadata only; stock_quantity is mutated exclusively through the
// adjust and checkout paths.
func UpdateProductHandler() fiber.Handler {
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
			Where("id = ? AND shop_id = ?", productID, shopID).
			First(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}

		price, err := parsePrice(body.Price)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.Price == nil {
			price = product.Price
		}

		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.
				Where("id = ? AND shop_id = ?", *body.CategoryID, shopID).
				First(&category).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
		}

		updates := map[string]interface{}{
			"name":        body.Name,
			"category_id": body.CategoryID,
			"price":       price,
			"description": strings.TrimSpace(body.Description),
		}
		if body.ImageURL != nil {
			updates["image_url"] = strings.TrimSpace(*body.ImageURL)
		}

		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update product")
		}

		return c.JSON(fiber.Map{"message": "Product updated successfully"})
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		productID, err := c.ParamsInt("id")
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
		}

		result := database.DB.
			Where("id = ? AND shop_id = ?", productID, shopID).
			Delete(&models.Product{})
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete product")
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		return c.JSON(fiber.Map{"message": "Product deleted successfully"})
	}
}
