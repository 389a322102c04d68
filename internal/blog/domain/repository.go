package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, blog *Blog) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Blog, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Blog, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CreateComment(ctx context.Context, db *gorm.DB, comment *Comment) error
	FindComments(ctx context.Context, db *gorm.DB, blogID snowflake.ID) ([]Comment, error)
	DeleteComments(ctx context.Context, db *gorm.DB, blogID snowflake.ID) error
}
