package team

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Invited members log in with this until they change it in settings.
const defaultPassword = "Welcome123"

type InviteRequest struct {
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

type MemberResponse struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt string          `json:"created_at"`
}

// GET /api/team
func ListMembersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var members []models.User
		if err := database.DB.
			Where("shop_id = ?", shopID).
			Order("created_at DESC").
			Find(&members).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load team members")
		}

		res := make([]MemberResponse, 0, len(members))
		for _, m := range members {
			res = append(res, MemberResponse{
				ID:        m.ID,
				Email:     m.Email,
				Role:      m.Role,
				CreatedAt: m.CreatedAt.Format(time.RFC3339),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/team/invite
func InviteMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}

		var body InviteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email is required")
		}
		if body.Role != models.RoleManager && body.Role != models.RoleStaff {
			return fiber.NewError(fiber.StatusBadRequest, "Role must be manager or staff")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to invite member")
		}

		member := models.User{
			ShopID:       shopID,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
		}
		if err := database.DB.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "This email is already registered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to invite member")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": fmt.Sprintf("Member invited. Default password is %s", defaultPassword),
			"member": MemberResponse{
				ID:        member.ID,
				Email:     member.Email,
				Role:      member.Role,
				CreatedAt: member.CreatedAt.Format(time.RFC3339),
			},
		})
	}
}

// DELETE /api/team/:id
func RemoveMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		memberID, err := c.ParamsInt("id")
		if err != nil || memberID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid member ID")
		}
		if uint(memberID) == userID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot remove yourself")
		}

		// Owners are never removable through this endpoint.
		result := database.DB.
			Where("id = ? AND shop_id = ? AND role != ?", memberID, shopID, models.RoleOwner).
			Delete(&models.User{})
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove member")
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Member not found or cannot be removed")
		}

		return c.JSON(fiber.Map{"message": "Member removed from the team"})
	}
}

// PUT /api/team/:id/role
func UpdateRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ShopID(c)
		if err != nil {
			return err
		}
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		memberID, err := c.ParamsInt("id")
		if err != nil || memberID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid member ID")
		}
		if uint(memberID) == userID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot change your own role")
		}

		var body UpdateRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Role != models.RoleManager && body.Role != models.RoleStaff {
			return fiber.NewError(fiber.StatusBadRequest, "Role must be manager or staff")
		}

		var member models.User
		if err := database.DB.
			Where("id = ? AND shop_id = ?", memberID, shopID).
			First(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		if member.Role == models.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, "Cannot change the owner's role")
		}

		if err := database.DB.Model(&member).Update("role", body.Role).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update member role")
		}

		return c.JSON(fiber.Map{"message": fmt.Sprintf("%s role updated to %s", member.Email, body.Role)})
	}
}
