package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/agrimart/agrimart/internal/catalog/domain"
)

const (
	defaultProductPageSize = 20
	maxProductPageSize     = 100
)

type updateStockRequest struct {
	StockQuantity *int `json:"stock_quantity"`
}

func (s *Server) ListProducts(c *gin.Context) {
	skip, limit, err := parsePagination(c, defaultProductPageSize, maxProductPageSize)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	products, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListRequest{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Brand:    c.Query("brand"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) GetProduct(c *gin.Context) {
	product, err := s.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) CreateFertilizer(c *gin.Context) {
	var req catalogdomain.CreateFertilizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.catalogSvc.CreateFertilizer(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) CreatePesticide(c *gin.Context) {
	var req catalogdomain.CreatePesticideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.catalogSvc.CreatePesticide(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) CreateSeed(c *gin.Context) {
	var req catalogdomain.CreateSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.catalogSvc.CreateSeed(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) CreateEquipment(c *gin.Context) {
	var req catalogdomain.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.catalogSvc.CreateEquipment(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) UpdateProductStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StockQuantity == nil {
		AbortWithError(c, newValidationError("stock_quantity", "required", "stock_quantity is required"))
		return
	}

	if err := s.catalogSvc.UpdateStock(c.Request.Context(), c.Param("id"), *req.StockQuantity); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
}
