package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CartItem struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID    snowflake.ID `json:"user_id" gorm:"not null;uniqueIndex:ux_cart_user_product,priority:1"`
	ProductID snowflake.ID `json:"product_id" gorm:"not null;uniqueIndex:ux_cart_user_product,priority:2"`
	Quantity  int          `json:"quantity" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }

var (
	ErrItemNotFound = errors.New("cart_item_not_found")
	ErrEmptyCart    = errors.New("empty_cart")
)
