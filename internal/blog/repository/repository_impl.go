package repository

import (
	"context"
	"errors"

	"github.com/agrimart/agrimart/internal/blog/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, blog *domain.Blog) error {
	return db.WithContext(ctx).Create(blog).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Blog, error) {
	var blog domain.Blog
	err := db.WithContext(ctx).Where("id = ?", id).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Blog, error) {
	var blogs []domain.Blog
	err := db.WithContext(ctx).Order("created_at DESC").Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	tx := db.WithContext(ctx).Model(&domain.Blog{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	tx := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Blog{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) CreateComment(ctx context.Context, db *gorm.DB, comment *domain.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *repo) FindComments(ctx context.Context, db *gorm.DB, blogID snowflake.ID) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := db.WithContext(ctx).Where("blog_id = ?", blogID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *repo) DeleteComments(ctx context.Context, db *gorm.DB, blogID snowflake.ID) error {
	return db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&domain.Comment{}).Error
}
