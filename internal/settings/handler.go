package settings

import (
	"errors"
	"strings"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateShopRequest struct {
	Name string `json:"name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ChangeEmailRequest struct {
	NewEmail        string `json:"new_email"`
	CurrentPassword string `json:"current_password"`
}

// PUT /api/settings/shop (owner only)
func UpdateShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var body UpdateShopRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Shop name is required")
		}

		if err := database.DB.Model(&models.Shop{}).
			Where("id = ?", shopID).
			Update("name", body.Name).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update shop profile")
		}

		return c.JSON(fiber.Map{"message": "Shop profile updated successfully"})
	}
}

// PUT /api/settings/password
func ChangePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CurrentPassword == "" || body.NewPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Both password fields are required")
		}
		if len(body.NewPassword) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "New password must be at least 6 characters")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect current password")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to change password")
		}

		if err := database.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to change password")
		}

		return c.JSON(fiber.Map{"message": "Password changed successfully"})
	}
}

// PUT /api/settings/email
func ChangeEmailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body ChangeEmailRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.NewEmail = strings.TrimSpace(strings.ToLower(body.NewEmail))
		if body.NewEmail == "" || body.CurrentPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email and current password are required")
		}
		if !strings.Contains(body.NewEmail, "@") || !strings.Contains(body.NewEmail, ".") {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email format")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		if body.NewEmail == user.Email {
			return fiber.NewError(fiber.StatusBadRequest, "New email is the same as your current email")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect password")
		}

		if err := database.DB.Model(&user).Update("email", body.NewEmail).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Email address is already in use")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update email address")
		}

		return c.JSON(fiber.Map{"message": "Email address updated successfully"})
	}
}
