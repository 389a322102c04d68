package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ItemRequest struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductType string  `json:"product_type"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type CreateRequest struct {
	Items           []ItemRequest `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	OrderType       string        `json:"order_type"`
	ShippingAddress *string       `json:"shipping_address"`
}

type ItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductType string  `json:"product_type"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Response struct {
	ID                string         `json:"id"`
	TotalAmount       float64        `json:"total_amount"`
	OrderType         string         `json:"order_type"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"payment_status"`
	ShippingAddress   *string        `json:"shipping_address,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	Items             []ItemResponse `json:"items"`
}

type GatewayOrderResponse struct {
	RazorpayOrder any    `json:"razorpay_order"`
	KeyID         string `json:"key_id"`
	OrderID       string `json:"order_id"`
}

type VerifyPaymentRequest struct {
	OrderID           string `json:"order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateRequest) (*Response, error)
	// CreateTx runs the create inside the caller's transaction so cart
	// checkout can clear the cart atomically with order creation.
	CreateTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID, req CreateRequest) (*Response, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Response, error)
	Get(ctx context.Context, userID snowflake.ID, orderID string) (*Response, error)
	UpdateStatus(ctx context.Context, userID snowflake.ID, orderID, status string) error
	BuyNow(ctx context.Context, userID snowflake.ID, productID string, quantity int) (*Response, error)
	CreateGatewayOrder(ctx context.Context, userID snowflake.ID, orderID string) (*GatewayOrderResponse, error)
	VerifyPayment(ctx context.Context, userID snowflake.ID, req VerifyPaymentRequest) error
}
