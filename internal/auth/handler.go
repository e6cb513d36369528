package auth

import (
	"errors"
	"log"
	"strings"

	"shopstock-backend/internal/config"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	ShopName string `json:"shop_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
// Creates the shop and its owner user in one transaction.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ShopName = strings.TrimSpace(body.ShopName)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.ShopName == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Shop name, email and password are required")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		var user models.User
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			shop := models.Shop{Name: body.ShopName}
			if err := tx.Create(&shop).Error; err != nil {
				return err
			}

			user = models.User{
				ShopID:       shop.ID,
				Email:        body.Email,
				PasswordHash: string(hash),
				Role:         models.RoleOwner,
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "This email is already registered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
		}

		log.Printf("New shop registered: %q (shop_id=%d)", body.ShopName, user.ShopID)

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":      user.ID,
				"shop_id": user.ShopID,
				"email":   user.Email,
				"role":    user.Role,
			},
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":      user.ID,
				"shop_id": user.ShopID,
				"email":   user.Email,
				"role":    user.Role,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.Preload("Shop").First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}

		resp := fiber.Map{
			"id":      user.ID,
			"shop_id": user.ShopID,
			"email":   user.Email,
			"role":    user.Role,
		}
		if user.Shop != nil {
			resp["shop"] = fiber.Map{
				"id":   user.Shop.ID,
				"name": user.Shop.Name,
			}
		}
		return c.JSON(resp)
	}
}
