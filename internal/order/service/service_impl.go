package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
	"github.com/agrimart/agrimart/internal/observability/metrics"
	"github.com/agrimart/agrimart/internal/order/domain"
	paymentdomain "github.com/agrimart/agrimart/internal/payment/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	taxRate           = 0.18
	freeShippingAbove = 500.0
	shippingFee       = 50.0
	totalTolerance    = 1.0

	minDeliveryDays = 7
	maxDeliveryDays = 10
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
	Gateway     paymentdomain.Gateway
	Metrics     *metrics.Metrics
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	catalogRepo catalogdomain.Repository
	gateway     paymentdomain.Gateway
	metrics     *metrics.Metrics
	genID       *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
		gateway:     p.Gateway,
		metrics:     p.Metrics,
		genID:       p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateRequest) (*domain.Response, error) {
	var resp *domain.Response
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resp, err = s.CreateTx(ctx, tx, userID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) CreateTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID, req domain.CreateRequest) (*domain.Response, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if req.OrderType != domain.TypeCart && req.OrderType != domain.TypeBuyNow {
		return nil, domain.ErrInvalidRequest
	}

	var subtotal float64
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, domain.ErrInvalidRequest
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := math.Round(subtotal * taxRate)
	shipping := shippingFee
	if subtotal > freeShippingAbove {
		shipping = 0
	}
	calculated := subtotal + tax + shipping

	// One rupee of slack covers client-side rounding.
	if math.Abs(calculated-req.TotalAmount) > totalTolerance {
		s.log.Warn("order total mismatch",
			zap.Float64("calculated", calculated),
			zap.Float64("received", req.TotalAmount),
		)
		return nil, domain.ErrTotalMismatch
	}

	now := time.Now().UTC()
	delivery := estimateDelivery(now)

	order := &domain.Order{
		ID:              s.genID.Generate(),
		UserID:          userID,
		TotalAmount:     req.TotalAmount,
		OrderType:       req.OrderType,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		ShippingAddress: req.ShippingAddress,
		DeliveryDate:    &delivery,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := snowflake.ParseString(item.ProductID)
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		items = append(items, domain.OrderItem{
			ID:           s.genID.Generate(),
			OrderID:      order.ID,
			ProductID:    productID,
			Quantity:     item.Quantity,
			PricePerUnit: item.Price,
			TotalPrice:   item.Price * float64(item.Quantity),
		})
	}

	if err := s.repo.Create(ctx, tx, order, items); err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, order.OrderType)
	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_type", order.OrderType),
		zap.Float64("total_amount", order.TotalAmount),
	)

	resp := s.toResponse(ctx, tx, order)
	return &resp, nil
}

// estimateDelivery returns now plus 7 to 10 days, advanced past any
// weekend landing day.
func estimateDelivery(now time.Time) time.Time {
	days := minDeliveryDays + rand.Intn(maxDeliveryDays-minDeliveryDays+1)
	delivery := now.AddDate(0, 0, days)
	for delivery.Weekday() == time.Saturday || delivery.Weekday() == time.Sunday {
		delivery = delivery.AddDate(0, 0, 1)
	}
	return delivery
}

func (s *Service) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Response, error) {
	orders, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, s.toResponse(ctx, s.db, &order))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, userID snowflake.ID, orderID string) (*domain.Response, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, s.db, order)
	return &resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, userID snowflake.ID, orderID, status string) error {
	if !domain.IsValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}

	return s.repo.UpdateFields(ctx, s.db, order.ID, map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) BuyNow(ctx context.Context, userID snowflake.ID, productID string, quantity int) (*domain.Response, error) {
	if quantity <= 0 {
		quantity = 1
	}

	id, err := snowflake.ParseString(productID)
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}
	product, err := s.catalogRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	subtotal := product.Price * float64(quantity)
	tax := math.Round(subtotal * taxRate)
	shipping := shippingFee
	if subtotal > freeShippingAbove {
		shipping = 0
	}

	return s.Create(ctx, userID, domain.CreateRequest{
		Items: []domain.ItemRequest{{
			ProductID:   product.ID.String(),
			ProductName: product.Name,
			ProductType: product.ProductType,
			Price:       product.Price,
			Quantity:    quantity,
		}},
		TotalAmount: subtotal + tax + shipping,
		OrderType:   domain.TypeBuyNow,
	})
}

func (s *Service) CreateGatewayOrder(ctx context.Context, userID snowflake.ID, orderID string) (*domain.GatewayOrderResponse, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	amountPaise := int64(math.Round(order.TotalAmount * 100))
	receipt := fmt.Sprintf("order_rcptid_%s", order.ID.String())

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountPaise, receipt, map[string]string{
		"order_id": order.ID.String(),
		"user_id":  userID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, s.db, order.ID, map[string]any{
		"razorpay_order_id": gatewayOrder.ID,
		"updated_at":        time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	return &domain.GatewayOrderResponse{
		RazorpayOrder: gatewayOrder,
		KeyID:         s.gateway.KeyID(),
		OrderID:       order.ID.String(),
	}, nil
}

func (s *Service) VerifyPayment(ctx context.Context, userID snowflake.ID, req domain.VerifyPaymentRequest) error {
	order, err := s.findOwned(ctx, userID, req.OrderID)
	if err != nil {
		return err
	}

	if err := s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		s.metrics.RecordPaymentVerified(ctx, "failed")
		return err
	}

	if err := s.repo.UpdateFields(ctx, s.db, order.ID, map[string]any{
		"status":         domain.StatusConfirmed,
		"payment_status": domain.PaymentCompleted,
		"updated_at":     time.Now().UTC(),
	}); err != nil {
		return err
	}

	s.metrics.RecordPaymentVerified(ctx, "completed")
	s.log.Info("payment verified", zap.String("order_id", order.ID.String()))
	return nil
}

func (s *Service) findOwned(ctx context.Context, userID snowflake.ID, orderID string) (*domain.Order, error) {
	id, err := snowflake.ParseString(orderID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) toResponse(ctx context.Context, db *gorm.DB, order *domain.Order) domain.Response {
	items, err := s.repo.FindItems(ctx, db, order.ID)
	if err != nil {
		s.log.Warn("failed to load order items", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	itemResponses := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		resp := domain.ItemResponse{
			ProductID: item.ProductID.String(),
			Price:     item.PricePerUnit,
			Quantity:  item.Quantity,
		}
		if product, err := s.catalogRepo.FindByID(ctx, db, item.ProductID); err == nil {
			resp.ProductName = product.Name
			resp.ProductType = product.ProductType
		}
		itemResponses = append(itemResponses, resp)
	}

	return domain.Response{
		ID:                order.ID.String(),
		TotalAmount:       order.TotalAmount,
		OrderType:         order.OrderType,
		Status:            order.Status,
		PaymentStatus:     order.PaymentStatus,
		ShippingAddress:   order.ShippingAddress,
		EstimatedDelivery: order.DeliveryDate,
		CreatedAt:         order.CreatedAt,
		Items:             itemResponses,
	}
}
