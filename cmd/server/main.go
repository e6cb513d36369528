package main

import (
	"log"
	"strings"

	"shopstock-backend/internal/auth"
	"shopstock-backend/internal/category"
	"shopstock-backend/internal/config"
	"shopstock-backend/internal/dashboard"
	"shopstock-backend/internal/database"
	"shopstock-backend/internal/inventory"
	"shopstock-backend/internal/mailer"
	"shopstock-backend/internal/models"
	"shopstock-backend/internal/notify"
	"shopstock-backend/internal/pos"
	"shopstock-backend/internal/search"
	"shopstock-backend/internal/settings"
	"shopstock-backend/internal/team"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	mailer.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Per-route role guards; an empty-prefix group with Use() would leak the
	// guard onto every /api route registered after it.
	manageOnly := auth.RequireRole(models.RoleOwner, models.RoleManager)
	ownerOnly := auth.RequireRole(models.RoleOwner)

	// Products (any authenticated member can view, sell and adjust)
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/export", inventory.ExportProductsHandler())
	protected.Get("/products/:id", inventory.GetProductHandler())
	protected.Get("/products/:id/history", inventory.ProductHistoryHandler())
	protected.Post("/products/:id/adjust", inventory.AdjustStockHandler())

	// Product management (owner/manager)
	protected.Post("/products", manageOnly, inventory.CreateProductHandler())
	protected.Put("/products/:id", manageOnly, inventory.UpdateProductHandler())
	protected.Delete("/products/:id", manageOnly, inventory.DeleteProductHandler())

	// Categories
	protected.Get("/categories", category.ListCategoriesHandler())
	protected.Post("/categories", manageOnly, category.CreateCategoryHandler())
	protected.Delete("/categories/:id", manageOnly, category.DeleteCategoryHandler())

	// POS
	protected.Get("/pos/products", pos.ListSellableProductsHandler())
	protected.Post("/pos/checkout", pos.CheckoutHandler())

	// Notifications
	protected.Get("/notifications/unread", notify.UnreadHandler())
	protected.Post("/notifications/read-all", notify.MarkAllReadHandler())
	protected.Post("/notifications/:id/read", notify.MarkReadHandler())

	// Dashboard & search
	protected.Get("/dashboard", dashboard.StatsHandler())
	protected.Get("/search", search.GlobalSearchHandler())

	// Team management (owner only)
	protected.Get("/team", ownerOnly, team.ListMembersHandler())
	protected.Post("/team/invite", ownerOnly, team.InviteMemberHandler())
	protected.Delete("/team/:id", ownerOnly, team.RemoveMemberHandler())
	protected.Put("/team/:id/role", ownerOnly, team.UpdateRoleHandler())

	// Settings
	protected.Put("/settings/password", settings.ChangePasswordHandler())
	protected.Put("/settings/email", settings.ChangeEmailHandler())
	protected.Put("/settings/shop", ownerOnly, settings.UpdateShopHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
