package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hamzazerouala/windevexpert/internal/config"
	"github.com/hamzazerouala/windevexpert/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres deployments fall back to the model-driven schema.
			if err := conn.AutoMigrate(seed.Models()...); err != nil {
				return err
			}
		}

		if !cfg.IsProduction() {
			return seed.EnsureDemoData(conn, log)
		}
		return nil
	}),
)
