package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/agrimart/agrimart/internal/cart/domain"
)

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) AddToCart(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.cartSvc.Add(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) CartItems(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	items, err := s.cartSvc.Items(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) UpdateCartItem(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.cartSvc.Update(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (s *Server) RemoveFromCart(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	if err := s.cartSvc.Remove(c.Request.Context(), userID, c.Param("productID")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (s *Server) ClearCart(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	if err := s.cartSvc.Clear(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (s *Server) CartCount(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	count, err := s.cartSvc.Count(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) CartTotal(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	total, err := s.cartSvc.Total(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, total)
}

func (s *Server) CheckoutCart(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req cartdomain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.cartSvc.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}
