package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, item *CartItem) error
	Find(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID) (*CartItem, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID, quantity int) error
	Delete(ctx context.Context, db *gorm.DB, userID, productID snowflake.ID) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
