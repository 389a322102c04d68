package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/agrimart/agrimart/internal/order/domain"
)

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type buyNowRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createGatewayOrderRequest struct {
	OrderID string `json:"order_id"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) MyOrders(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	orders, err := s.orderSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) GetOrder(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	order, err := s.orderSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		AbortWithError(c, newValidationError("status", "required", "status is required"))
		return
	}

	if err := s.orderSvc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

func (s *Server) BuyNow(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req buyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.BuyNow(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) CreateRazorpayOrder(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req createGatewayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.orderSvc.CreateGatewayOrder(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) VerifyRazorpayPayment(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req orderdomain.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.orderSvc.VerifyPayment(c.Request.Context(), userID, req); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Payment verified successfully",
	})
}
