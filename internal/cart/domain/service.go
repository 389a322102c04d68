package domain

import (
	"context"

	orderdomain "github.com/agrimart/agrimart/internal/order/domain"
	"github.com/bwmarrin/snowflake"
)

// ItemView is a cart row joined with its product.
type ItemView struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductType string  `json:"product_type"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

type AddResult struct {
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
	Action    string `json:"action"`
}

type TotalResult struct {
	Total    float64 `json:"total"`
	Items    int     `json:"items"`
	Quantity int     `json:"quantity"`
}

type CheckoutRequest struct {
	TotalAmount     float64 `json:"total_amount"`
	ShippingAddress string  `json:"shipping_address"`
}

type Service interface {
	Add(ctx context.Context, userID snowflake.ID, productID string, quantity int) (*AddResult, error)
	Items(ctx context.Context, userID snowflake.ID) ([]ItemView, error)
	Update(ctx context.Context, userID snowflake.ID, productID string, quantity int) error
	Remove(ctx context.Context, userID snowflake.ID, productID string) error
	Clear(ctx context.Context, userID snowflake.ID) error
	Count(ctx context.Context, userID snowflake.ID) (int, error)
	Total(ctx context.Context, userID snowflake.ID) (*TotalResult, error)
	Checkout(ctx context.Context, userID snowflake.ID, req CheckoutRequest) (*orderdomain.Response, error)
}
