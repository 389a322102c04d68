package migration

import (
	authdomain "github.com/agrimart/agrimart/internal/auth/domain"
	blogdomain "github.com/agrimart/agrimart/internal/blog/domain"
	cartdomain "github.com/agrimart/agrimart/internal/cart/domain"
	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
	"github.com/agrimart/agrimart/internal/config"
	orderdomain "github.com/agrimart/agrimart/internal/order/domain"
	"github.com/agrimart/agrimart/internal/seed"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are development conveniences; gorm's
			// auto migration keeps them in sync with the models.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&blogdomain.Blog{},
				&blogdomain.Comment{},
				&catalogdomain.Product{},
				&catalogdomain.FertilizerDetail{},
				&catalogdomain.PesticideDetail{},
				&catalogdomain.SeedDetail{},
				&catalogdomain.EquipmentDetail{},
				&cartdomain.CartItem{},
				&orderdomain.Order{},
				&orderdomain.OrderItem{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedSampleData {
			return seed.EnsureSampleData(conn, log, genID)
		}
		return nil
	}),
)
