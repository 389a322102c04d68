package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Order lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Order types.
const (
	TypeCart   = "cart"
	TypeBuyNow = "buynow"
)

type Order struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID          snowflake.ID `json:"user_id" gorm:"not null;index"`
	TotalAmount     float64      `json:"total_amount" gorm:"not null"`
	OrderType       string       `json:"order_type" gorm:"size:20;not null"`
	Status          string       `json:"status" gorm:"size:20;not null;default:pending"`
	PaymentStatus   string       `json:"payment_status" gorm:"size:20;not null;default:pending"`
	ShippingAddress *string      `json:"shipping_address,omitempty"`
	DeliveryDate    *time.Time   `json:"delivery_date,omitempty"`
	RazorpayOrderID *string      `json:"razorpay_order_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	OrderID      snowflake.ID `json:"order_id" gorm:"not null;index"`
	ProductID    snowflake.ID `json:"product_id" gorm:"not null"`
	Quantity     int          `json:"quantity" gorm:"not null"`
	PricePerUnit float64      `json:"price_per_unit" gorm:"not null"`
	TotalPrice   float64      `json:"total_price" gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// ValidStatuses is the full status set accepted by status updates.
var ValidStatuses = []string{
	StatusPending, StatusConfirmed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var (
	ErrNotFound       = errors.New("order_not_found")
	ErrForbidden      = errors.New("order_access_denied")
	ErrEmptyOrder     = errors.New("empty_order")
	ErrTotalMismatch  = errors.New("order_total_mismatch")
	ErrInvalidStatus  = errors.New("invalid_order_status")
	ErrInvalidID      = errors.New("invalid_order_id")
	ErrInvalidRequest = errors.New("invalid_order_request")
)
