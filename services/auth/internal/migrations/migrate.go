package migrations

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/services/auth/internal/models"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// Up applies goose migrations on postgres; sqlite (local runs and tests) is
// migrated from the gorm models instead.
func Up(db *gorm.DB, driver string) error {
	if driver == config.DriverSQLite {
		if err := db.AutoMigrate(&models.Account{}); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, "sql"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
