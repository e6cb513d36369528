package database

import (
	"log"

	"shopstock-backend/internal/config"
	"shopstock-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError turns the driver's unique-violation errors into
	// gorm.ErrDuplicatedKey, which the SKU retry and the email uniqueness
	// checks depend on.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.StockMovement{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// stock_movements is append-only: revoke row rewrites at the schema level
	// so even a buggy code path cannot edit the trail. The update rule is
	// conditional because ON DELETE SET NULL on the product/user references is
	// itself an update of those columns and must pass through; only the
	// recorded facts are frozen. Errors are non-fatal (the rule may already
	// exist, or the role may lack rule privileges on a managed instance).
	for _, stmt := range []string{
		`CREATE OR REPLACE RULE stock_movements_no_update AS ON UPDATE TO stock_movements
			WHERE NEW.shop_id IS DISTINCT FROM OLD.shop_id
				OR NEW.quantity_change IS DISTINCT FROM OLD.quantity_change
				OR NEW.reason IS DISTINCT FROM OLD.reason
				OR NEW.notes IS DISTINCT FROM OLD.notes
				OR NEW.correlation_id IS DISTINCT FROM OLD.correlation_id
				OR NEW.created_at IS DISTINCT FROM OLD.created_at
			DO INSTEAD NOTHING`,
		`CREATE OR REPLACE RULE stock_movements_no_delete AS ON DELETE TO stock_movements DO INSTEAD NOTHING`,
	} {
		if err := DB.Exec(stmt).Error; err != nil {
			log.Printf("[WARN] could not install append-only rule on stock_movements: %v", err)
		}
	}

	log.Println("Database connected, migrations complete.")
}
