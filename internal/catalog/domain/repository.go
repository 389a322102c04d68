package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Category string
	Search   string
	Brand    string
	Skip     int
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	CreateDetail(ctx context.Context, db *gorm.DB, detail any) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, error)
	FindDetail(ctx context.Context, db *gorm.DB, productType string, id snowflake.ID) (any, error)
	UpdateStock(ctx context.Context, db *gorm.DB, id snowflake.ID, newStock int) error
}
