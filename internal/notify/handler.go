package notify

import (
	"shopstock-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const unreadLimit = 10

// GET /api/notifications/unread
func UnreadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		notifications, err := Unread(shopID, unreadLimit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notifications")
		}
		count, err := UnreadCount(shopID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notifications")
		}

		return c.JSON(fiber.Map{
			"notifications": notifications,
			"unread_count":  count,
		})
	}
}

// POST /api/notifications/:id/read
func MarkReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		notificationID, err := c.ParamsInt("id")
		if err != nil || notificationID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid notification ID")
		}

		if err := MarkRead(uint(notificationID), shopID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark as read")
		}
		return c.JSON(fiber.Map{"message": "ok"})
	}
}

// POST /api/notifications/read-all
func MarkAllReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		if err := MarkAllRead(shopID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark all as read")
		}
		return c.JSON(fiber.Map{"message": "ok"})
	}
}
