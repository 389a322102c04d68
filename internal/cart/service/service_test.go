package service

import (
	"context"
	"testing"

	"github.com/agrimart/agrimart/internal/cart/domain"
	"github.com/agrimart/agrimart/internal/cart/repository"
	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
	catalogrepo "github.com/agrimart/agrimart/internal/catalog/repository"
	orderdomain "github.com/agrimart/agrimart/internal/order/domain"
	orderrepo "github.com/agrimart/agrimart/internal/order/repository"
	orderservice "github.com/agrimart/agrimart/internal/order/service"
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
		&domain.CartItem{},
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	catalogRepo := catalogrepo.New()
	orders := orderservice.New(orderservice.Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        orderrepo.New(),
		CatalogRepo: catalogRepo,
		Gateway:     paymentmock.New(),
	})

	svc := New(Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.New(),
		CatalogRepo: catalogRepo,
		Orders:      orders,
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
		Category:    catalogdomain.TypeSeed,
		ProductType: catalogdomain.TypeSeed,
		IsActive:    true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func TestAddTwiceIncrementsQuantity(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()
	product := f.seedProduct(t, "Rice Seeds", 100)

	first, err := f.svc.Add(context.Background(), userID, product.ID.String(), 2)
	require.NoError(t, err)
	require.Equal(t, "added", first.Action)
	require.Equal(t, 2, first.CartCount)

	second, err := f.svc.Add(context.Background(), userID, product.ID.String(), 3)
	require.NoError(t, err)
	require.Equal(t, "incremented", second.Action)
	require.Equal(t, 5, second.CartCount)

	count, err := f.svc.Count(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestUpdateZeroRemovesItem(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()
	product := f.seedProduct(t, "Rice Seeds", 100)

	_, err := f.svc.Add(context.Background(), userID, product.ID.String(), 2)
	require.NoError(t, err)

	require.NoError(t, f.svc.Update(context.Background(), userID, product.ID.String(), 0))

	items, err := f.svc.Items(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, items)

	total, err := f.svc.Total(context.Background(), userID)
	require.NoError(t, err)
	require.Zero(t, total.Total)
}

func TestRemoveMissingItem(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()
	product := f.seedProduct(t, "Rice Seeds", 100)

	err := f.svc.Remove(context.Background(), userID, product.ID.String())
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestTotalSumsLines(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	rice := f.seedProduct(t, "Rice Seeds", 100)
	wheat := f.seedProduct(t, "Wheat Seeds", 250)

	_, err := f.svc.Add(context.Background(), userID, rice.ID.String(), 2)
	require.NoError(t, err)
	_, err = f.svc.Add(context.Background(), userID, wheat.ID.String(), 1)
	require.NoError(t, err)

	total, err := f.svc.Total(context.Background(), userID)
	require.NoError(t, err)
	require.InDelta(t, 450.0, total.Total, 0.001)
	require.Equal(t, 2, total.Items)
	require.Equal(t, 3, total.Quantity)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()
	product := f.seedProduct(t, "Rice Seeds", 100)

	_, err := f.svc.Add(context.Background(), userID, product.ID.String(), 2)
	require.NoError(t, err)

	// subtotal 200, tax 36, shipping 50
	resp, err := f.svc.Checkout(context.Background(), userID, domain.CheckoutRequest{
		TotalAmount:     286,
		ShippingAddress: "12 Farm Lane",
	})
	require.NoError(t, err)
	require.Equal(t, orderdomain.TypeCart, resp.OrderType)

	items, err := f.svc.Items(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCheckoutMismatchKeepsCart(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()
	product := f.seedProduct(t, "Rice Seeds", 100)

	_, err := f.svc.Add(context.Background(), userID, product.ID.String(), 2)
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), userID, domain.CheckoutRequest{
		TotalAmount:     999,
		ShippingAddress: "12 Farm Lane",
	})
	require.ErrorIs(t, err, orderdomain.ErrTotalMismatch)

	count, err := f.svc.Count(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var orderCount int64
	require.NoError(t, f.db.Model(&orderdomain.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	userID := f.node.Generate()

	_, err := f.svc.Checkout(context.Background(), userID, domain.CheckoutRequest{TotalAmount: 0})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}
