package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*DetailResponse, error)
	CreateFertilizer(ctx context.Context, req CreateFertilizerRequest) (*Response, error)
	CreatePesticide(ctx context.Context, req CreatePesticideRequest) (*Response, error)
	CreateSeed(ctx context.Context, req CreateSeedRequest) (*Response, error)
	CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*Response, error)
	UpdateStock(ctx context.Context, id string, newStock int) error
}

type ListRequest struct {
	Category string
	Search   string
	Brand    string
	Skip     int
	Limit    int
}

// CreateProductRequest carries the base fields shared by every subtype.
type CreateProductRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Brand         string  `json:"brand"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ImageURL      *string `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
}

type CreateFertilizerRequest struct {
	CreateProductRequest
	NPKRatio          *string `json:"npk_ratio"`
	Organic           bool    `json:"organic"`
	FertilizerType    *string `json:"fertilizer_type"`
	CoverageArea      *string `json:"coverage_area"`
	ApplicationMethod *string `json:"application_method"`
	Nutrients         *string `json:"nutrients"`
	SuitableCrops     *string `json:"suitable_crops"`
}

type CreatePesticideRequest struct {
	CreateProductRequest
	ActiveIngredient *string `json:"active_ingredient"`
	PesticideType    *string `json:"pesticide_type"`
	ToxicityLevel    *string `json:"toxicity_level"`
	ApplicationRate  *string `json:"application_rate"`
	TargetPests      *string `json:"target_pests"`
	SafetyPeriod     *string `json:"safety_period"`
	DilutionRatio    *string `json:"dilution_ratio"`
}

type CreateSeedRequest struct {
	CreateProductRequest
	Variety             *string  `json:"variety"`
	SeedType            *string  `json:"seed_type"`
	GerminationRate     *float64 `json:"germination_rate"`
	MaturityDays        *int     `json:"maturity_days"`
	PlantingSeason      *string  `json:"planting_season"`
	Spacing             *string  `json:"spacing"`
	SoilType            *string  `json:"soil_type"`
	SunlightRequirement *string  `json:"sunlight_requirement"`
	WaterRequirement    *string  `json:"water_requirement"`
}

type CreateEquipmentRequest struct {
	CreateProductRequest
	EquipmentType    *string `json:"equipment_type"`
	PowerSource      *string `json:"power_source"`
	Material         *string `json:"material"`
	Dimensions       *string `json:"dimensions"`
	Weight           *string `json:"weight"`
	WarrantyPeriod   *string `json:"warranty_period"`
	PowerConsumption *string `json:"power_consumption"`
	Capacity         *string `json:"capacity"`
}

type Response struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Brand         string    `json:"brand"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ProductType   string    `json:"product_type"`
	ImageURL      *string   `json:"image_url,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// DetailResponse merges the base product with its subtype detail fields.
type DetailResponse struct {
	Response
	Details any `json:"details,omitempty"`
}

var (
	ErrNotFound      = errors.New("product_not_found")
	ErrInvalidID     = errors.New("invalid_product_id")
	ErrInvalidInput  = errors.New("invalid_product_input")
	ErrNegativeStock = errors.New("negative_stock")
)
