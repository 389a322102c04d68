package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/agrimart/agrimart/internal/cart/domain"
	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
	orderdomain "github.com/agrimart/agrimart/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultImageURL = "/images/default.jpg"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
	Orders      orderdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	catalogRepo catalogdomain.Repository
	orders      orderdomain.Service
	genID       *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("cart.service"),
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
		orders:      p.Orders,
		genID:       p.GenID,
	}
}

func (s *Service) Add(ctx context.Context, userID snowflake.ID, productID string, quantity int) (*domain.AddResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	pid, err := snowflake.ParseString(productID)
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}
	product, err := s.catalogRepo.FindByID(ctx, s.db, pid)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Find(ctx, s.db, userID, pid)
	if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	if existing != nil {
		existing.Quantity += quantity
		existing.UpdatedAt = now
		if err := s.repo.Upsert(ctx, s.db, existing); err != nil {
			return nil, err
		}
		return &domain.AddResult{
			Message:   fmt.Sprintf("Added %d more %s to cart (total: %d)", quantity, product.Name, existing.Quantity),
			CartCount: existing.Quantity,
			Action:    "incremented",
		}, nil
	}

	item := &domain.CartItem{
		ID:        s.genID.Generate(),
		UserID:    userID,
		ProductID: pid,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, s.db, item); err != nil {
		return nil, err
	}

	return &domain.AddResult{
		Message:   fmt.Sprintf("Added %s to cart", product.Name),
		CartCount: quantity,
		Action:    "added",
	}, nil
}

func (s *Service) Items(ctx context.Context, userID snowflake.ID) ([]domain.ItemView, error) {
	items, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ItemView, 0, len(items))
	for _, item := range items {
		product, err := s.catalogRepo.FindByID(ctx, s.db, item.ProductID)
		if err != nil {
			// Products deactivated after being carted are skipped.
			continue
		}

		imageURL := defaultImageURL
		if product.ImageURL != nil && *product.ImageURL != "" {
			imageURL = *product.ImageURL
		}
		views = append(views, domain.ItemView{
			ProductID:   product.ID.String(),
			ProductName: product.Name,
			ProductType: product.ProductType,
			Price:       product.Price,
			Quantity:    item.Quantity,
			ImageURL:    imageURL,
		})
	}
	return views, nil
}

func (s *Service) Update(ctx context.Context, userID snowflake.ID, productID string, quantity int) error {
	pid, err := snowflake.ParseString(productID)
	if err != nil {
		return catalogdomain.ErrInvalidID
	}

	if quantity <= 0 {
		return s.repo.Delete(ctx, s.db, userID, pid)
	}
	return s.repo.UpdateQuantity(ctx, s.db, userID, pid, quantity)
}

func (s *Service) Remove(ctx context.Context, userID snowflake.ID, productID string) error {
	pid, err := snowflake.ParseString(productID)
	if err != nil {
		return catalogdomain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, userID, pid)
}

func (s *Service) Clear(ctx context.Context, userID snowflake.ID) error {
	return s.repo.DeleteByUser(ctx, s.db, userID)
}

func (s *Service) Count(ctx context.Context, userID snowflake.ID) (int, error) {
	items, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

func (s *Service) Total(ctx context.Context, userID snowflake.ID) (*domain.TotalResult, error) {
	items, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	result := &domain.TotalResult{Items: len(items)}
	for _, item := range items {
		product, err := s.catalogRepo.FindByID(ctx, s.db, item.ProductID)
		if err != nil {
			continue
		}
		result.Total += product.Price * float64(item.Quantity)
		result.Quantity += item.Quantity
	}
	result.Total = math.Round(result.Total*100) / 100
	return result, nil
}

// Checkout creates the order and clears the cart in one transaction so
// a failed order create leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context, userID snowflake.ID, req domain.CheckoutRequest) (*orderdomain.Response, error) {
	views, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrEmptyCart
	}

	orderItems := make([]orderdomain.ItemRequest, 0, len(views))
	for _, view := range views {
		orderItems = append(orderItems, orderdomain.ItemRequest{
			ProductID:   view.ProductID,
			ProductName: view.ProductName,
			ProductType: view.ProductType,
			Price:       view.Price,
			Quantity:    view.Quantity,
		})
	}

	var shippingAddress *string
	if req.ShippingAddress != "" {
		shippingAddress = &req.ShippingAddress
	}

	var resp *orderdomain.Response
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resp, err = s.orders.CreateTx(ctx, tx, userID, orderdomain.CreateRequest{
			Items:           orderItems,
			TotalAmount:     req.TotalAmount,
			OrderType:       orderdomain.TypeCart,
			ShippingAddress: shippingAddress,
		})
		if err != nil {
			return err
		}
		return s.repo.DeleteByUser(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("cart checkout complete",
		zap.String("user_id", userID.String()),
		zap.String("order_id", resp.ID),
	)
	return resp, nil
}
