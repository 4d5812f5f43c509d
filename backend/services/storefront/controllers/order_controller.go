package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

// OrderController handles checkout and the admin order board.
type OrderController struct {
	checkoutService services.CheckoutService
	orderService    services.OrderService
	receiptService  services.ReceiptService
}

func NewOrderController(checkout services.CheckoutService, orders services.OrderService, receipts services.ReceiptService) *OrderController {
	return &OrderController{checkoutService: checkout, orderService: orders, receiptService: receipts}
}

// CreateOrder handles POST /orders.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result := oc.checkoutService.PlaceOrder(c.Request.Context(), &req)
	c.JSON(checkoutStatus(result), result)
}

// checkoutStatus maps a checkout result onto an HTTP status.
func checkoutStatus(result *models.CheckoutResult) int {
	switch {
	case result.Success:
		return http.StatusCreated
	case result.Declined:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// ListOrders handles GET /admin/orders.
func (oc *OrderController) ListOrders(c *gin.Context) {
	receipts, err := oc.receiptService.ListReceipts(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": receipts})
}

// CompleteOrder handles POST /admin/orders/:id/complete.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := oc.orderService.CompleteOrder(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order completed"})
}
