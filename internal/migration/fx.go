package migration

import (
	"github.com/smallbiznis/seatcounter/internal/config"
	"github.com/smallbiznis/seatcounter/internal/seed"
	sessiondomain "github.com/smallbiznis/seatcounter/internal/session/domain"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	ticketdomain "github.com/smallbiznis/seatcounter/internal/ticket/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations for postgres; mysql/sqlite deployments
		// are dev setups and get the schema via AutoMigrate.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			err := conn.AutoMigrate(
				&tabledomain.Table{},
				&sessiondomain.Session{},
				&ticketdomain.Ticket{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.SeedDemoTables {
			return seed.EnsureDefaultTables(conn)
		}
		return nil
	}),
)
