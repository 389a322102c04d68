package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product type discriminators.
const (
	TypeFertilizer = "fertilizer"
	TypePesticide  = "pesticide"
	TypeSeed       = "seed"
	TypeEquipment  = "equipment"
)

type Product struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"size:200;not null;index"`
	Price         float64      `json:"price" gorm:"not null"`
	Brand         string       `json:"brand" gorm:"size:100;index"`
	Title         string       `json:"title" gorm:"size:200"`
	Description   string       `json:"description" gorm:"type:text"`
	Category      string       `json:"category" gorm:"size:50;index"`
	ProductType   string       `json:"product_type" gorm:"size:50;not null"`
	ImageURL      *string      `json:"image_url,omitempty"`
	StockQuantity int          `json:"stock_quantity" gorm:"not null;default:0"`
	IsActive      bool         `json:"is_active" gorm:"not null;default:true"`
	Rating        float64      `json:"rating" gorm:"not null;default:0"`
	ReviewCount   int          `json:"review_count" gorm:"not null;default:0"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type FertilizerDetail struct {
	ProductID         snowflake.ID `json:"-" gorm:"primaryKey"`
	NPKRatio          *string      `json:"npk_ratio,omitempty"`
	Organic           bool         `json:"organic"`
	FertilizerType    *string      `json:"fertilizer_type,omitempty"`
	CoverageArea      *string      `json:"coverage_area,omitempty"`
	ApplicationMethod *string      `json:"application_method,omitempty"`
	Nutrients         *string      `json:"nutrients,omitempty"`
	SuitableCrops     *string      `json:"suitable_crops,omitempty"`
}

func (FertilizerDetail) TableName() string { return "fertilizer_details" }

type PesticideDetail struct {
	ProductID        snowflake.ID `json:"-" gorm:"primaryKey"`
	ActiveIngredient *string      `json:"active_ingredient,omitempty"`
	PesticideType    *string      `json:"pesticide_type,omitempty"`
	ToxicityLevel    *string      `json:"toxicity_level,omitempty"`
	ApplicationRate  *string      `json:"application_rate,omitempty"`
	TargetPests      *string      `json:"target_pests,omitempty"`
	SafetyPeriod     *string      `json:"safety_period,omitempty"`
	DilutionRatio    *string      `json:"dilution_ratio,omitempty"`
}

func (PesticideDetail) TableName() string { return "pesticide_details" }

type SeedDetail struct {
	ProductID           snowflake.ID `json:"-" gorm:"primaryKey"`
	Variety             *string      `json:"variety,omitempty"`
	SeedType            *string      `json:"seed_type,omitempty"`
	GerminationRate     *float64     `json:"germination_rate,omitempty"`
	MaturityDays        *int         `json:"maturity_days,omitempty"`
	PlantingSeason      *string      `json:"planting_season,omitempty"`
	Spacing             *string      `json:"spacing,omitempty"`
	SoilType            *string      `json:"soil_type,omitempty"`
	SunlightRequirement *string      `json:"sunlight_requirement,omitempty"`
	WaterRequirement    *string      `json:"water_requirement,omitempty"`
}

func (SeedDetail) TableName() string { return "seed_details" }

type EquipmentDetail struct {
	ProductID        snowflake.ID `json:"-" gorm:"primaryKey"`
	EquipmentType    *string      `json:"equipment_type,omitempty"`
	PowerSource      *string      `json:"power_source,omitempty"`
	Material         *string      `json:"material,omitempty"`
	Dimensions       *string      `json:"dimensions,omitempty"`
	Weight           *string      `json:"weight,omitempty"`
	WarrantyPeriod   *string      `json:"warranty_period,omitempty"`
	PowerConsumption *string      `json:"power_consumption,omitempty"`
	Capacity         *string      `json:"capacity,omitempty"`
}

func (EquipmentDetail) TableName() string { return "equipment_details" }
