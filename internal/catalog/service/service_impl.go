package service

import (
	"context"
	"strings"
	"time"

	"github.com/agrimart/agrimart/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := req.Skip
	if skip < 0 {
		skip = 0
	}

	products, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Category: strings.TrimSpace(req.Category),
		Search:   strings.TrimSpace(req.Search),
		Brand:    strings.TrimSpace(req.Brand),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(products))
	for _, p := range products {
		resp = append(resp, toResponse(&p))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.DetailResponse, error) {
	productID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.FindDetail(ctx, s.db, product.ProductType, product.ID)
	if err != nil {
		return nil, err
	}

	return &domain.DetailResponse{
		Response: toResponse(product),
		Details:  detail,
	}, nil
}

func (s *Service) CreateFertilizer(ctx context.Context, req domain.CreateFertilizerRequest) (*domain.Response, error) {
	product, err := s.newProduct(req.CreateProductRequest, domain.TypeFertilizer)
	if err != nil {
		return nil, err
	}
	detail := &domain.FertilizerDetail{
		ProductID:         product.ID,
		NPKRatio:          req.NPKRatio,
		Organic:           req.Organic,
		FertilizerType:    req.FertilizerType,
		CoverageArea:      req.CoverageArea,
		ApplicationMethod: req.ApplicationMethod,
		Nutrients:         req.Nutrients,
		SuitableCrops:     req.SuitableCrops,
	}
	return s.persist(ctx, product, detail)
}

func (s *Service) CreatePesticide(ctx context.Context, req domain.CreatePesticideRequest) (*domain.Response, error) {
	product, err := s.newProduct(req.CreateProductRequest, domain.TypePesticide)
	if err != nil {
		return nil, err
	}
	detail := &domain.PesticideDetail{
		ProductID:        product.ID,
		ActiveIngredient: req.ActiveIngredient,
		PesticideType:    req.PesticideType,
		ToxicityLevel:    req.ToxicityLevel,
		ApplicationRate:  req.ApplicationRate,
		TargetPests:      req.TargetPests,
		SafetyPeriod:     req.SafetyPeriod,
		DilutionRatio:    req.DilutionRatio,
	}
	return s.persist(ctx, product, detail)
}

func (s *Service) CreateSeed(ctx context.Context, req domain.CreateSeedRequest) (*domain.Response, error) {
	product, err := s.newProduct(req.CreateProductRequest, domain.TypeSeed)
	if err != nil {
		return nil, err
	}
	detail := &domain.SeedDetail{
		ProductID:           product.ID,
		Variety:             req.Variety,
		SeedType:            req.SeedType,
		GerminationRate:     req.GerminationRate,
		MaturityDays:        req.MaturityDays,
		PlantingSeason:      req.PlantingSeason,
		Spacing:             req.Spacing,
		SoilType:            req.SoilType,
		SunlightRequirement: req.SunlightRequirement,
		WaterRequirement:    req.WaterRequirement,
	}
	return s.persist(ctx, product, detail)
}

func (s *Service) CreateEquipment(ctx context.Context, req domain.CreateEquipmentRequest) (*domain.Response, error) {
	product, err := s.newProduct(req.CreateProductRequest, domain.TypeEquipment)
	if err != nil {
		return nil, err
	}
	detail := &domain.EquipmentDetail{
		ProductID:        product.ID,
		EquipmentType:    req.EquipmentType,
		PowerSource:      req.PowerSource,
		Material:         req.Material,
		Dimensions:       req.Dimensions,
		Weight:           req.Weight,
		WarrantyPeriod:   req.WarrantyPeriod,
		PowerConsumption: req.PowerConsumption,
		Capacity:         req.Capacity,
	}
	return s.persist(ctx, product, detail)
}

func (s *Service) UpdateStock(ctx context.Context, id string, newStock int) error {
	productID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	if newStock < 0 {
		return domain.ErrNegativeStock
	}
	return s.repo.UpdateStock(ctx, s.db, productID, newStock)
}

// newProduct validates the shared fields and builds the base row.
// Category and product_type both carry the discriminator, as the
// storefront filters on category.
func (s *Service) newProduct(req domain.CreateProductRequest, productType string) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	brand := strings.TrimSpace(req.Brand)
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if name == "" || brand == "" || title == "" || description == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Price <= 0 {
		return nil, domain.ErrInvalidInput
	}
	stock := req.StockQuantity
	if stock < 0 {
		return nil, domain.ErrNegativeStock
	}

	now := time.Now().UTC()
	return &domain.Product{
		ID:            s.genID.Generate(),
		Name:          name,
		Price:         req.Price,
		Brand:         brand,
		Title:         title,
		Description:   description,
		Category:      productType,
		ProductType:   productType,
		ImageURL:      req.ImageURL,
		StockQuantity: stock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *Service) persist(ctx context.Context, product *domain.Product, detail any) (*domain.Response, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, product); err != nil {
			return err
		}
		return s.repo.CreateDetail(ctx, tx, detail)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("product_type", product.ProductType),
	)

	resp := toResponse(product)
	return &resp, nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:            p.ID.String(),
		Name:          p.Name,
		Price:         p.Price,
		Brand:         p.Brand,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		ProductType:   p.ProductType,
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		CreatedAt:     p.CreatedAt,
	}
}
