package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/agrimart/agrimart/internal/auth/domain"
	"github.com/agrimart/agrimart/internal/auth/password"
	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@agrimart.local"
	demoPassword = "demo1234"
)

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

func intptr(i int) *int { return &i }

// EnsureSampleData seeds a demo account and one product per catalog
// subtype so a fresh install has something to browse. Safe to run on
// every startup.
func EnsureSampleData(db *gorm.DB, log *zap.Logger, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDemoUser(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureSampleProducts(ctx, tx, node); err != nil {
			return err
		}
		log.Info("sample data ensured")
		return nil
	})
}

func ensureDemoUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var user authdomain.User
	err := tx.WithContext(ctx).Where("username = ?", demoUsername).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(demoPassword)
	if err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&authdomain.User{
		ID:           node.Generate(),
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: hashed,
	}).Error
}

func ensureSampleProducts(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fertilizer := catalogdomain.Product{
		ID:            node.Generate(),
		Name:          "Organic Vermicompost",
		Price:         349,
		Brand:         "GreenGrow",
		Title:         "Organic Vermicompost 5kg",
		Description:   "Nutrient rich organic compost for vegetables and flowering plants.",
		Category:      catalogdomain.TypeFertilizer,
		ProductType:   catalogdomain.TypeFertilizer,
		StockQuantity: 120,
		IsActive:      true,
	}
	pesticide := catalogdomain.Product{
		ID:            node.Generate(),
		Name:          "Neem Oil Concentrate",
		Price:         499,
		Brand:         "AgroShield",
		Title:         "Neem Oil Concentrate 1L",
		Description:   "Broad spectrum botanical pesticide safe for organic farming.",
		Category:      catalogdomain.TypePesticide,
		ProductType:   catalogdomain.TypePesticide,
		StockQuantity: 80,
		IsActive:      true,
	}
	seedProduct := catalogdomain.Product{
		ID:            node.Generate(),
		Name:          "Hybrid Tomato Seeds",
		Price:         199,
		Brand:         "SeedWorks",
		Title:         "Hybrid Tomato Seeds 50g",
		Description:   "High yield determinate tomato variety suited for warm climates.",
		Category:      catalogdomain.TypeSeed,
		ProductType:   catalogdomain.TypeSeed,
		StockQuantity: 200,
		IsActive:      true,
	}
	equipment := catalogdomain.Product{
		ID:            node.Generate(),
		Name:          "Battery Sprayer",
		Price:         2499,
		Brand:         "FarmTech",
		Title:         "Battery Operated Knapsack Sprayer 16L",
		Description:   "Rechargeable sprayer with adjustable nozzle for field crops.",
		Category:      catalogdomain.TypeEquipment,
		ProductType:   catalogdomain.TypeEquipment,
		StockQuantity: 25,
		IsActive:      true,
	}

	products := []catalogdomain.Product{fertilizer, pesticide, seedProduct, equipment}
	for i := range products {
		if err := tx.WithContext(ctx).Create(&products[i]).Error; err != nil {
			return err
		}
	}

	details := []any{
		&catalogdomain.FertilizerDetail{
			ProductID:      fertilizer.ID,
			NPKRatio:       strptr("2-1-1"),
			Organic:        true,
			FertilizerType: strptr("compost"),
			SuitableCrops:  strptr("vegetables, flowers"),
		},
		&catalogdomain.PesticideDetail{
			ProductID:        pesticide.ID,
			ActiveIngredient: strptr("azadirachtin"),
			PesticideType:    strptr("botanical"),
			ToxicityLevel:    strptr("low"),
			DilutionRatio:    strptr("5ml per litre"),
		},
		&catalogdomain.SeedDetail{
			ProductID:       seedProduct.ID,
			Variety:         strptr("hybrid"),
			GerminationRate: floatptr(92),
			MaturityDays:    intptr(70),
			PlantingSeason:  strptr("summer"),
		},
		&catalogdomain.EquipmentDetail{
			ProductID:      equipment.ID,
			EquipmentType:  strptr("sprayer"),
			PowerSource:    strptr("battery"),
			Capacity:       strptr("16L"),
			WarrantyPeriod: strptr("12 months"),
		},
	}
	for _, detail := range details {
		if err := tx.WithContext(ctx).Create(detail).Error; err != nil {
			return err
		}
	}
	return nil
}
