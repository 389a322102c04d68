package service

import (
	"context"
	"testing"

	"github.com/agrimart/agrimart/internal/catalog/domain"
	"github.com/agrimart/agrimart/internal/catalog/repository"
	"github.com/agrimart/agrimart/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&domain.Product{},
		&domain.FertilizerDetail{},
		&domain.PesticideDetail{},
		&domain.SeedDetail{},
		&domain.EquipmentDetail{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.New(),
	})
}

func fertilizerRequest(name string) domain.CreateFertilizerRequest {
	npk := "10-26-26"
	return domain.CreateFertilizerRequest{
		CreateProductRequest: domain.CreateProductRequest{
			Name:          name,
			Price:         499.0,
			Brand:         "GreenGrow",
			Title:         name + " 5kg pack",
			Description:   "Balanced NPK fertilizer for vegetables",
			StockQuantity: 20,
		},
		NPKRatio: &npk,
		Organic:  false,
	}
}

func TestCreateFertilizerAndGet(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateFertilizer(context.Background(), fertilizerRequest("NPK Booster"))
	require.NoError(t, err)
	require.Equal(t, domain.TypeFertilizer, created.ProductType)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	detail, ok := got.Details.(*domain.FertilizerDetail)
	require.True(t, ok)
	require.NotNil(t, detail.NPKRatio)
	require.Equal(t, "10-26-26", *detail.NPKRatio)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := newTestService(t)

	req := fertilizerRequest("NPK Booster")
	req.Brand = "  "
	_, err := svc.CreateFertilizer(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	req = fertilizerRequest("NPK Booster")
	req.Price = 0
	_, err = svc.CreateFertilizer(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListCategoryFilter(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateFertilizer(context.Background(), fertilizerRequest("NPK Booster"))
	require.NoError(t, err)

	variety := "Basmati"
	_, err = svc.CreateSeed(context.Background(), domain.CreateSeedRequest{
		CreateProductRequest: domain.CreateProductRequest{
			Name:          "Rice Seeds",
			Price:         199.0,
			Brand:         "AgriSeed",
			Title:         "Premium rice seeds",
			Description:   "High yield basmati rice seeds",
			StockQuantity: 50,
		},
		Variety: &variety,
	})
	require.NoError(t, err)

	seeds, err := svc.List(context.Background(), domain.ListRequest{Category: domain.TypeSeed})
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	require.Equal(t, "Rice Seeds", seeds[0].Name)

	all, err := svc.List(context.Background(), domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListSearch(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateFertilizer(context.Background(), fertilizerRequest("NPK Booster"))
	require.NoError(t, err)
	_, err = svc.CreateFertilizer(context.Background(), fertilizerRequest("Compost Mix"))
	require.NoError(t, err)

	found, err := svc.List(context.Background(), domain.ListRequest{Search: "compost"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Compost Mix", found[0].Name)
}

func TestUpdateStock(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateFertilizer(context.Background(), fertilizerRequest("NPK Booster"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStock(context.Background(), created.ID, 7))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.StockQuantity)

	err = svc.UpdateStock(context.Background(), created.ID, -1)
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	err = svc.UpdateStock(context.Background(), snowflake.ID(12345).String(), 3)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
