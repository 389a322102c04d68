package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/agrimart/agrimart/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) CreateDetail(ctx context.Context, db *gorm.DB, detail any) error {
	return db.WithContext(ctx).Create(detail).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Product, error) {
	q := db.WithContext(ctx).Model(&domain.Product{}).Where("is_active = ?", true)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
			needle, needle, needle,
		)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []domain.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) FindDetail(ctx context.Context, db *gorm.DB, productType string, id snowflake.ID) (any, error) {
	var dest any
	switch productType {
	case domain.TypeFertilizer:
		dest = &domain.FertilizerDetail{}
	case domain.TypePesticide:
		dest = &domain.PesticideDetail{}
	case domain.TypeSeed:
		dest = &domain.SeedDetail{}
	case domain.TypeEquipment:
		dest = &domain.EquipmentDetail{}
	default:
		return nil, nil
	}

	err := db.WithContext(ctx).Where("product_id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dest, nil
}

func (r *repo) UpdateStock(ctx context.Context, db *gorm.DB, id snowflake.ID, newStock int) error {
	tx := db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("stock_quantity", newStock)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
