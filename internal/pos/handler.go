package pos

import (
	"errors"
	"log"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

type CheckoutRequest struct {
	Cart []CartLine `json:"cart"`
}

type POSProductResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	ImageURL      string `json:"image_url"`
}

// GET /api/pos/products
func ListSellableProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		products, err := availableProducts(shopID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load products")
		}

		res := make([]POSProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, POSProductResponse{
				ID:            p.ID,
				Name:          p.Name,
				SKU:           p.SKU,
				Price:         p.Price.StringFixed(2),
				StockQuantity: p.StockQuantity,
				ImageURL:      p.ImageURL,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/pos/checkout
func CheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		receipt, err := Checkout(shopID, userID, body.Cart)
		if err != nil {
			return checkoutError(err)
		}

		return c.JSON(fiber.Map{
			"message": "Sale completed successfully",
			"sale":    receipt,
		})
	}
}

// checkoutError maps the stock error taxonomy onto HTTP responses; the
// message names the offending product where one exists.
func checkoutError(err error) error {
	var insufficient *stock.InsufficientStockError
	switch {
	case errors.Is(err, stock.ErrEmptyCart):
		return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
	case errors.Is(err, stock.ErrInvalidCartLine):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid cart item")
	case errors.Is(err, stock.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	case errors.As(err, &insufficient):
		return fiber.NewError(fiber.StatusConflict, insufficient.Error())
	default:
		log.Println("Checkout failed:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process sale")
	}
}
