package inventory

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdjustStockRequest struct {
	Direction string `json:"direction"` // "add" or "remove"
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

// POST /api/products/:id/adjust
// Manual stock adjustment: one product, one transaction, through the same
// mutator as checkout. Alerts queue during the transaction and flush only
// after it commits.
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		productID, err := c.ParamsInt("id")
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Quantity <= 0 {
			return adjustError(stock.ErrInvalidQuantity)
		}

		delta := body.Quantity
		defaultReason := "Restock"
		switch body.Direction {
		case "add":
		case "remove":
			delta = -body.Quantity
			defaultReason = "Manual Removal"
		default:
			return adjustError(stock.ErrInvalidDirection)
		}

		reason := strings.TrimSpace(body.Reason)
		if reason == "" {
			reason = defaultReason
		}

		out := stock.NewOutbox()
		var (
			result     *stock.ApplyDeltaResult
			ownerEmail string
		)
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			ownerEmail = stock.OwnerEmail(tx, shopID)
			result, err = stock.ApplyDelta(tx, out, stock.ApplyDeltaParams{
				ShopID:    shopID,
				ProductID: uint(productID),
				Delta:     delta,
				Reason:    reason,
				Notes:     strings.TrimSpace(body.Notes),
				UserID:    &userID,
			})
			return err
		})
		if err != nil {
			return adjustError(err)
		}

		out.Flush(shopID, ownerEmail)

		action := "added to"
		if delta < 0 {
			action = "removed from"
		}
		return c.JSON(fiber.Map{
			"message":        fmt.Sprintf("%d units %s %s. New stock: %d", body.Quantity, action, result.Product.Name, result.Product.StockQuantity),
			"new_quantity":   result.Product.StockQuantity,
			"previous_stock": result.PreviousQuantity,
		})
	}
}

func adjustError(err error) error {
	var insufficient *stock.InsufficientStockError
	switch {
	case errors.Is(err, stock.ErrInvalidQuantity):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid quantity")
	case errors.Is(err, stock.ErrInvalidDirection):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid adjustment type")
	case errors.Is(err, stock.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	case errors.As(err, &insufficient):
		// Carries the quantity on hand so the caller can message it.
		return fiber.NewError(fiber.StatusConflict, insufficient.Error())
	default:
		log.Println("Adjust stock failed:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to adjust stock")
	}
}
