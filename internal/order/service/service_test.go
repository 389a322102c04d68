package service

import (
	"context"
	"testing"
	"time"

	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
	catalogrepo "github.com/agrimart/agrimart/internal/catalog/repository"
	"github.com/agrimart/agrimart/internal/order/domain"
	"github.com/agrimart/agrimart/internal/order/repository"
	paymentmock "github.com/agrimart/agrimart/internal/payment/mock"
	"github.com/agrimart/agrimart/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&domain.Order{},
		&domain.OrderItem{},
		&catalogdomain.Product{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.New(),
		CatalogRepo: catalogrepo.New(),
		Gateway:     paymentmock.New(),
	})

	return &fixture{svc: svc, db: dbConn, node: node}
}

func (f *fixture) seedProduct(t *testing.T, name string, price float64) *catalogdomain.Product {
	t.Helper()
	product := &catalogdomain.Product{
		ID:          f.node.Generate(),
		Name:        name,
		Price:       price,
		Brand:       "AgriBrand",
		Title:       name,
		Description: name,
		Category:    catalogdomain.TypeFertilizer,
		ProductType: catalogdomain.TypeFertilizer,
		IsActive:    true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func orderRequest(product *catalogdomain.Product, qty int, total float64) domain.CreateRequest {
	addr := "12 Farm Lane"
	return domain.CreateRequest{
		Items: []domain.ItemRequest{{
			ProductID:   product.ID.String(),
			ProductName: product.Name,
			ProductType: product.ProductType,
			Price:       product.Price,
			Quantity:    qty,
		}},
		TotalAmount:     total,
		OrderType:       domain.TypeCart,
		ShippingAddress: &addr,
	}
}

func TestCreateOrderPricing(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	// subtotal 400, tax 72, shipping 50
	product := f.seedProduct(t, "NPK Booster", 200)
	resp, err := f.svc.Create(context.Background(), userID, orderRequest(product, 2, 522))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, resp.Status)
	require.Equal(t, domain.PaymentPending, resp.PaymentStatus)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "NPK Booster", resp.Items[0].ProductName)
}

func TestCreateOrderFreeShippingOver500(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	// subtotal 501, tax round(90.18)=90, shipping 0
	product := f.seedProduct(t, "Premium Mix", 501)
	_, err := f.svc.Create(context.Background(), userID, orderRequest(product, 1, 591))
	require.NoError(t, err)

	// subtotal exactly 500 still pays shipping: tax 90, shipping 50
	cheap := f.seedProduct(t, "Standard Mix", 500)
	_, err = f.svc.Create(context.Background(), userID, orderRequest(cheap, 1, 640))
	require.NoError(t, err)
}

func TestCreateOrderTotalMismatchCreatesNothing(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	product := f.seedProduct(t, "NPK Booster", 200)
	_, err := f.svc.Create(context.Background(), userID, orderRequest(product, 2, 999))
	require.ErrorIs(t, err, domain.ErrTotalMismatch)

	var orderCount, itemCount int64
	require.NoError(t, f.db.Model(&domain.Order{}).Count(&orderCount).Error)
	require.NoError(t, f.db.Model(&domain.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, orderCount)
	require.Zero(t, itemCount)
}

func TestCreateOrderToleratesRounding(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	product := f.seedProduct(t, "NPK Booster", 200)
	_, err := f.svc.Create(context.Background(), userID, orderRequest(product, 2, 522.9))
	require.NoError(t, err)
}

func TestCreateOrderEmpty(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	_, err := f.svc.Create(context.Background(), userID, domain.CreateRequest{
		OrderType: domain.TypeCart,
	})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestDeliveryEstimateSkipsWeekends(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // a Monday
	for i := 0; i < 50; i++ {
		delivery := estimateDelivery(now)
		require.NotEqual(t, time.Saturday, delivery.Weekday())
		require.NotEqual(t, time.Sunday, delivery.Weekday())

		days := delivery.Sub(now).Hours() / 24
		require.GreaterOrEqual(t, days, 7.0)
		require.LessOrEqual(t, days, 12.0)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.node.Generate()
	stranger := f.node.Generate()

	product := f.seedProduct(t, "NPK Booster", 200)
	created, err := f.svc.Create(context.Background(), owner, orderRequest(product, 2, 522))
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), owner, created.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), stranger, created.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	product := f.seedProduct(t, "NPK Booster", 200)
	created, err := f.svc.Create(context.Background(), userID, orderRequest(product, 2, 522))
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), userID, created.ID, domain.StatusShipped))

	got, err := f.svc.Get(context.Background(), userID, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, got.Status)

	err = f.svc.UpdateStatus(context.Background(), userID, created.ID, "teleported")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestBuyNowComputesTotal(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	product := f.seedProduct(t, "Sprayer", 350)
	resp, err := f.svc.BuyNow(context.Background(), userID, product.ID.String(), 1)
	require.NoError(t, err)
	require.Equal(t, domain.TypeBuyNow, resp.OrderType)
	// subtotal 350, tax 63, shipping 50
	require.InDelta(t, 463.0, resp.TotalAmount, 0.001)
}

func TestVerifyPaymentConfirmsOrder(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	product := f.seedProduct(t, "NPK Booster", 200)
	created, err := f.svc.Create(context.Background(), userID, orderRequest(product, 2, 522))
	require.NoError(t, err)

	gw, err := f.svc.CreateGatewayOrder(context.Background(), userID, created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, gw.OrderID)

	err = f.svc.VerifyPayment(context.Background(), userID, domain.VerifyPaymentRequest{
		OrderID:           created.ID,
		RazorpayPaymentID: "pay_123",
		RazorpayOrderID:   "order_123",
		RazorpaySignature: "sig",
	})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), userID, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, got.Status)
	require.Equal(t, domain.PaymentCompleted, got.PaymentStatus)
}
